package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"golang.org/x/term"

	"github.com/yacinedz/siyaqa/client"
	"github.com/yacinedz/siyaqa/client/session"
	"github.com/yacinedz/siyaqa/client/views"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	api   *client.Client
	store *session.Store
	out   io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  register -email EMAIL -name NAME -phone PHONE -gender GENDER -address ADDRESS -state STATE [-role ROLE] - sign up; the password will be prompted")
	fmt.Fprintln(cli.out, "  login -email EMAIL - log in; the password will be prompted")
	fmt.Fprintln(cli.out, "  logout - clear the stored session")
	fmt.Fprintln(cli.out, "  schools [-state STATE] [-gender GENDER] - browse driving schools")
	fmt.Fprintln(cli.out, "  dashboard - show the dashboard for the logged-in role")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()

	registerCmd := flag.NewFlagSet("register", flag.ExitOnError)
	registerEmail := registerCmd.String("email", "", "Your email.")
	registerName := registerCmd.String("name", "", "Your full name.")
	registerPhone := registerCmd.String("phone", "", "Your phone number.")
	registerGender := registerCmd.String("gender", "", "Your gender (male or female).")
	registerAddress := registerCmd.String("address", "", "Your address.")
	registerState := registerCmd.String("state", "", "Your wilaya.")
	registerRole := registerCmd.String("role", "", "Account role (student, teacher or manager).")

	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	loginEmail := loginCmd.String("email", "", "Your email. The password will be prompted next.")

	schoolsCmd := flag.NewFlagSet("schools", flag.ExitOnError)
	schoolsState := schoolsCmd.String("state", "", "Filter by wilaya.")
	schoolsGender := schoolsCmd.String("gender", "", "Only schools with teachers of this gender.")

	switch args[1] {
	case "register":
		if err := registerCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *registerEmail == "" || *registerName == "" {
			registerCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword("Enter password:")
		if err != nil {
			return err
		}
		confirm, err := cli.promptPassword("Confirm password:")
		if err != nil {
			return err
		}
		return cli.register(ctx, registerForm{
			email:    *registerEmail,
			name:     *registerName,
			phone:    *registerPhone,
			gender:   *registerGender,
			address:  *registerAddress,
			state:    *registerState,
			role:     *registerRole,
			password: pwd,
			confirm:  confirm,
		})
	case "login":
		if err := loginCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *loginEmail == "" {
			loginCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword("Enter password:")
		if err != nil {
			return err
		}
		return cli.login(ctx, *loginEmail, pwd)
	case "logout":
		if err := cli.store.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "Logged out.")
		return nil
	case "schools":
		if err := schoolsCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.schools(ctx, *schoolsState, *schoolsGender)
	case "dashboard":
		return cli.dashboard(ctx)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) register(ctx context.Context, form registerForm) error {
	usr, err := (&views.RegisterForm{
		Email:           form.email,
		FullName:        form.name,
		Phone:           form.phone,
		Gender:          form.gender,
		Address:         form.address,
		State:           form.state,
		Password:        form.password,
		PasswordConfirm: form.confirm,
		Role:            form.role,
	}).Submit(ctx, cli.api)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Welcome %s! You can now log in.\n", usr.FullName)
	return nil
}

type registerForm struct {
	email, name, phone, gender, address, state, role string
	password, confirm                                string
}

func (cli *commandLine) login(ctx context.Context, email, pwd string) error {
	form := views.LoginForm{Email: email, Password: pwd}
	path, err := form.Submit(ctx, cli.api)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Logged in. Your dashboard: %s\n", path)
	return nil
}

func (cli *commandLine) promptPassword(prompt string) (string, error) {
	fmt.Fprint(cli.out, prompt)
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}
