package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roamcar/roamcar/internal/domain"
	"github.com/roamcar/roamcar/internal/service"
)

// App is the interactive console. It subscribes to the services' change
// streams and renders from the streamed snapshots, so every mutation made
// through a command is reflected in the next render without re-querying.
type App struct {
	accounts service.AccountService
	listings service.ListingService
	logger   *slog.Logger

	reader *bufio.Reader
	out    io.Writer

	// Streamed state, refreshed by subscriptions.
	session  *domain.SessionUser
	cars     []domain.Car
	bookings []domain.Booking
}

// NewApp wires a console app over the two services.
func NewApp(
	accounts service.AccountService,
	listings service.ListingService,
	in io.Reader,
	out io.Writer,
	logger *slog.Logger,
) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		accounts: accounts,
		listings: listings,
		logger:   logger.With("component", "console"),
		reader:   bufio.NewReader(in),
		out:      out,
	}
}

// Run subscribes to the change streams and enters the command loop. It
// returns when the user exits, input reaches EOF or ctx is canceled.
func (a *App) Run(ctx context.Context) error {
	unsubSession := a.accounts.SessionChanges().Subscribe(func(u *domain.SessionUser) {
		a.session = u
	})
	defer unsubSession()
	unsubCars := a.listings.CarChanges().Subscribe(func(cars []domain.Car) {
		a.cars = cars
	})
	defer unsubCars()
	unsubBookings := a.listings.BookingChanges().Subscribe(func(bookings []domain.Booking) {
		a.bookings = bookings
	})
	defer unsubBookings()

	fmt.Fprintln(a.out, "roamcar — type 'help' for commands")

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		fmt.Fprintf(a.out, "roamcar %s> ", a.statusLine())
		line, err := a.reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read command: %w", err)
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			a.printHelp()
		case "register":
			a.register(ctx)
		case "login":
			a.login(ctx)
		case "logout":
			a.logout(ctx)
		case "whoami":
			a.whoami()
		case "cars":
			a.renderCars()
		case "addcar":
			a.addCar(ctx)
		case "editcar":
			a.editCar(ctx, args)
		case "delcar":
			a.deleteCar(ctx, args)
		case "book":
			a.book(ctx, args)
		case "bookings":
			a.renderBookings(ctx)
		case "cancel":
			a.cancelBooking(ctx, args)
		case "exit", "quit":
			return nil
		default:
			fmt.Fprintf(a.out, "unknown command %q; type 'help'\n", cmd)
		}
	}
}

func (a *App) statusLine() string {
	if a.session == nil {
		return "(guest)"
	}
	return fmt.Sprintf("(%s/%s)", a.session.Name, a.session.Role)
}

func (a *App) printHelp() {
	if a.session == nil {
		fmt.Fprintln(a.out, "commands: register, login, cars, help, exit")
		return
	}
	fmt.Fprintln(a.out, "commands: cars, book <car-id>, bookings, cancel <booking-id>,")
	fmt.Fprintln(a.out, "          addcar, editcar <car-id>, delcar <car-id> (admins),")
	fmt.Fprintln(a.out, "          whoami, logout, help, exit")
}

// requireLogin gates a command on an authenticated session.
func (a *App) requireLogin() *domain.SessionUser {
	user := a.accounts.CurrentUser()
	if user == nil {
		fmt.Fprintln(a.out, "Please log in first.")
		return nil
	}
	return user
}

// requireAdmin gates a command on the admin role. Authorization lives
// here on the calling side; the services trust the identity they are
// handed.
func (a *App) requireAdmin() *domain.SessionUser {
	user := a.requireLogin()
	if user == nil {
		return nil
	}
	if user.Role != domain.RoleAdmin {
		fmt.Fprintln(a.out, "Only admins may manage car listings.")
		return nil
	}
	return user
}

func (a *App) findCar(id string) *domain.Car {
	for _, car := range a.cars {
		if car.ID == id {
			found := car
			return &found
		}
	}
	return nil
}

func (a *App) findBooking(id string) *domain.Booking {
	for _, booking := range a.bookings {
		if booking.ID == id {
			found := booking
			return &found
		}
	}
	return nil
}
