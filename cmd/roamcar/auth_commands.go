package main

import (
	"context"
	"fmt"

	"github.com/roamcar/roamcar/internal/domain"
	"github.com/roamcar/roamcar/internal/service"
)

// register runs the registration form and establishes the new session.
func (a *App) register(ctx context.Context) {
	if a.session != nil {
		fmt.Fprintln(a.out, "Already logged in; log out first.")
		return
	}

	in := service.RegisterInput{
		Name:  a.prompt("Name"),
		Email: a.prompt("Email"),
		Phone: a.prompt("Phone"),
		Role:  domain.ParseRole(a.promptDefault("Role (admin/user)", "user")),
	}
	in.Password = a.promptPassword("Password")

	user, err := a.accounts.Register(ctx, in)
	if err != nil {
		a.logger.Debug("registration failed", "error", err)
		fmt.Fprintln(a.out, safeErrorMessage(err))
		return
	}

	fmt.Fprintf(a.out, "Welcome, %s! You are registered as %s.\n", user.Name, user.Role)
}

// login runs the login form.
func (a *App) login(ctx context.Context) {
	if a.session != nil {
		fmt.Fprintln(a.out, "Already logged in; log out first.")
		return
	}

	email := a.prompt("Email")
	password := a.promptPassword("Password")

	user, err := a.accounts.Login(ctx, email, password)
	if err != nil {
		a.logger.Debug("login failed", "error", err)
		fmt.Fprintln(a.out, safeErrorMessage(err))
		return
	}

	fmt.Fprintf(a.out, "Welcome back, %s!\n", user.Name)
}

func (a *App) logout(ctx context.Context) {
	if err := a.accounts.Logout(ctx); err != nil {
		a.logger.Error("logout failed", "error", err)
		fmt.Fprintln(a.out, safeErrorMessage(err))
		return
	}
	fmt.Fprintln(a.out, "Logged out.")
}

func (a *App) whoami() {
	user := a.accounts.CurrentUser()
	if user == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return
	}
	fmt.Fprintf(a.out, "%s <%s> %s (%s)\n", user.Name, user.Email, user.Phone, user.Role)
}
