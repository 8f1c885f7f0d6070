package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/wishlane/wishlane-backend/internal/client"
	"github.com/wishlane/wishlane-backend/pkg/apiclient"
)

// readPassword is a test seam so prompts can run without a terminal.
var readPassword = term.ReadPassword

type app struct {
	api        *apiclient.Client
	controller *client.Controller
	reader     *bufio.Reader
	out        io.Writer
	email      string
}

func newApp(api *apiclient.Client, controller *client.Controller) *app {
	return &app{
		api:        api,
		controller: controller,
		reader:     bufio.NewReader(os.Stdin),
		out:        os.Stdout,
	}
}

func (a *app) run(ctx context.Context) {
	fmt.Fprintln(a.out, "wishctl — type 'help' for commands")
	for {
		fmt.Fprintf(a.out, "wishctl %s> ", a.status())
		line, err := a.reader.ReadString('\n')
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		if ctx.Err() != nil {
			return
		}

		cmd, args := parts[0], parts[1:]
		switch cmd {
		case "help":
			a.printHelp()
		case "register":
			a.report(a.register(ctx))
		case "login":
			a.report(a.login(ctx))
		case "magiclink":
			a.report(a.magicLink(ctx, args))
		case "verify":
			a.report(a.verifyMagicLink(ctx, args))
		case "list", "ls":
			a.report(a.list(ctx))
		case "add":
			a.report(a.add(ctx))
		case "edit":
			a.report(a.edit(ctx, args))
		case "done":
			a.report(a.toggle(ctx, args))
		case "rm":
			a.report(a.remove(ctx, args))
		case "logout":
			a.report(a.logout(ctx))
		case "exit", "quit":
			return
		default:
			fmt.Fprintf(a.out, "unknown command %q, type 'help'\n", cmd)
		}
	}
}

func (a *app) status() string {
	if a.api.Authenticated() {
		return a.email
	}
	return "(signed out)"
}

func (a *app) printHelp() {
	if a.api.Authenticated() {
		fmt.Fprintln(a.out, "commands: list, add, edit <#>, done <#>, rm <#>, logout, exit")
		return
	}
	fmt.Fprintln(a.out, "commands: register, login, magiclink <email>, verify <token>, exit")
}

func (a *app) report(err error) {
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
	}
}

func (a *app) register(ctx context.Context) error {
	email, err := a.prompt("Email")
	if err != nil {
		return err
	}
	password, err := a.promptPassword()
	if err != nil {
		return err
	}
	session, err := a.api.Register(ctx, email, password)
	if err != nil {
		return err
	}
	a.email = session.User.Email
	fmt.Fprintln(a.out, "account created")
	return a.list(ctx)
}

func (a *app) login(ctx context.Context) error {
	email, err := a.prompt("Email")
	if err != nil {
		return err
	}
	password, err := a.promptPassword()
	if err != nil {
		return err
	}
	session, err := a.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	a.email = session.User.Email
	return a.list(ctx)
}

func (a *app) magicLink(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: magiclink <email>")
	}
	if err := a.api.RequestMagicLink(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "if the address is registered, a sign-in link is on its way")
	return nil
}

func (a *app) verifyMagicLink(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: verify <token>")
	}
	session, err := a.api.VerifyMagicLink(ctx, args[0])
	if err != nil {
		return err
	}
	a.email = session.User.Email
	return a.list(ctx)
}

func (a *app) logout(ctx context.Context) error {
	if err := a.api.Logout(ctx); err != nil {
		return err
	}
	a.email = ""
	fmt.Fprintln(a.out, "signed out")
	return nil
}

func (a *app) list(ctx context.Context) error {
	if err := a.controller.Refresh(ctx); err != nil {
		return err
	}
	wishes := a.controller.Wishes()
	if len(wishes) == 0 {
		fmt.Fprintln(a.out, "no wishes yet — try 'add'")
		return nil
	}
	for i, wish := range wishes {
		mark := " "
		if wish.Completed {
			mark = "x"
		}
		line := fmt.Sprintf("%2d. [%s] %-10s %-6s %s", i+1, mark, wish.Category, wish.Priority, wish.Title)
		if wish.Deadline != nil {
			line += " (by " + *wish.Deadline + ")"
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}

func (a *app) add(ctx context.Context) error {
	if err := a.controller.OpenCreate(); err != nil {
		return err
	}
	if err := a.fillForm(); err != nil {
		a.controller.Cancel()
		return err
	}
	if err := a.controller.Submit(ctx); err != nil {
		a.controller.Cancel()
		return err
	}
	return a.list(ctx)
}

func (a *app) edit(ctx context.Context, args []string) error {
	wish, err := a.pick(args)
	if err != nil {
		return err
	}
	if err := a.controller.OpenEdit(wish.ID); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "press enter to keep a value, enter '-' to clear an optional one")
	if err := a.fillForm(); err != nil {
		a.controller.Cancel()
		return err
	}
	if err := a.controller.Submit(ctx); err != nil {
		a.controller.Cancel()
		return err
	}
	return a.list(ctx)
}

func (a *app) toggle(ctx context.Context, args []string) error {
	wish, err := a.pick(args)
	if err != nil {
		return err
	}
	return a.controller.ToggleComplete(ctx, wish.ID)
}

func (a *app) remove(ctx context.Context, args []string) error {
	wish, err := a.pick(args)
	if err != nil {
		return err
	}
	return a.controller.Delete(ctx, wish.ID, func(w apiclient.Wish) bool {
		answer, err := a.prompt(fmt.Sprintf("Delete %q? (y/N)", w.Title))
		if err != nil {
			return false
		}
		return strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")
	})
}

// pick resolves a 1-based list index from the command arguments.
func (a *app) pick(args []string) (apiclient.Wish, error) {
	if len(args) != 1 {
		return apiclient.Wish{}, errors.New("usage: <command> <list number>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return apiclient.Wish{}, fmt.Errorf("not a list number: %q", args[0])
	}
	wishes := a.controller.Wishes()
	if n < 1 || n > len(wishes) {
		return apiclient.Wish{}, fmt.Errorf("no wish at position %d", n)
	}
	return wishes[n-1], nil
}

// fillForm prompts for each field of the open form. Blank answers keep the
// pre-populated value; "-" clears an optional field.
func (a *app) fillForm() error {
	form := a.controller.Form()

	title, err := a.promptDefault("Title", form.Title)
	if err != nil {
		return err
	}
	description, err := a.promptOptional("Description", form.Description)
	if err != nil {
		return err
	}
	category, err := a.promptDefault("Category (STUDY/HOBBY/TRAVEL/HEALTH/CAREER/OTHER)", form.Category)
	if err != nil {
		return err
	}
	priority, err := a.promptDefault("Priority (HIGH/MEDIUM/LOW)", form.Priority)
	if err != nil {
		return err
	}
	deadline, err := a.promptOptional("Deadline (YYYY-MM-DD)", form.Deadline)
	if err != nil {
		return err
	}

	a.controller.SetField(func(f *client.Form) {
		f.Title = title
		f.Description = description
		f.Category = category
		f.Priority = priority
		f.Deadline = deadline
	})
	return nil
}

func (a *app) prompt(label string) (string, error) {
	fmt.Fprintf(a.out, "%s: ", label)
	line, err := a.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *app) promptDefault(label, current string) (string, error) {
	display := label
	if current != "" {
		display = fmt.Sprintf("%s [%s]", label, current)
	}
	answer, err := a.prompt(display)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return current, nil
	}
	return answer, nil
}

func (a *app) promptOptional(label, current string) (string, error) {
	answer, err := a.promptDefault(label, current)
	if err != nil {
		return "", err
	}
	if answer == "-" {
		return "", nil
	}
	return answer, nil
}

func (a *app) promptPassword() (string, error) {
	fmt.Fprint(a.out, "Password: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(a.out)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}
