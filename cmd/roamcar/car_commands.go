package main

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/roamcar/roamcar/internal/domain"
)

// renderCars prints the current car snapshot, newest first.
func (a *App) renderCars() {
	if len(a.cars) == 0 {
		fmt.Fprintln(a.out, "No cars listed yet.")
		return
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tYEAR\tSEATS\tPRICE/DAY\tOWNER")
	for _, car := range a.cars {
		owner := car.OwnerName
		if owner == "" {
			owner = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.0f\t%s\n",
			car.ID, car.Title, car.Year, car.Seats, car.PricePerDay, owner)
	}
	_ = w.Flush()
}

// addCar runs the listing form. Admin-only; the owner snapshot comes from
// the current session.
func (a *App) addCar(ctx context.Context) {
	user := a.requireAdmin()
	if user == nil {
		return
	}

	car := domain.Car{
		Title:      a.prompt("Title"),
		Image:      a.prompt("Image (data URI, optional)"),
		OwnerID:    user.ID,
		OwnerName:  user.Name,
		OwnerPhone: user.Phone,
	}
	car.Year, _ = strconv.Atoi(a.prompt("Year"))
	car.Seats, _ = strconv.Atoi(a.prompt("Seats (4/5/7)"))
	car.PricePerDay, _ = strconv.ParseFloat(a.prompt("Price per day"), 64)

	// Form-side validation; the service trusts its input.
	if err := car.Validate(); err != nil {
		fmt.Fprintln(a.out, safeErrorMessage(err))
		return
	}

	stored, err := a.listings.SaveCar(ctx, car)
	if err != nil {
		a.logger.Error("failed to save car", "error", err)
		fmt.Fprintln(a.out, safeErrorMessage(err))
		return
	}

	fmt.Fprintf(a.out, "Listed %q as %s.\n", stored.Title, stored.ID)
}

// editCar re-runs the listing form over an existing record.
func (a *App) editCar(ctx context.Context, args []string) {
	user := a.requireAdmin()
	if user == nil {
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(a.out, "usage: editcar <car-id>")
		return
	}

	car := a.findCar(args[0])
	if car == nil {
		fmt.Fprintln(a.out, "No such car.")
		return
	}
	if car.OwnerID != "" && car.OwnerID != user.ID {
		fmt.Fprintln(a.out, "You may only edit your own listings.")
		return
	}

	updated := *car
	updated.Title = a.promptDefault("Title", car.Title)
	updated.Image = a.promptDefault("Image", car.Image)
	updated.Year, _ = strconv.Atoi(a.promptDefault("Year", strconv.Itoa(car.Year)))
	updated.Seats, _ = strconv.Atoi(a.promptDefault("Seats (4/5/7)", strconv.Itoa(car.Seats)))
	updated.PricePerDay, _ = strconv.ParseFloat(
		a.promptDefault("Price per day", strconv.FormatFloat(car.PricePerDay, 'f', -1, 64)), 64)

	if err := updated.Validate(); err != nil {
		fmt.Fprintln(a.out, safeErrorMessage(err))
		return
	}

	if _, err := a.listings.SaveCar(ctx, updated); err != nil {
		a.logger.Error("failed to save car", "error", err, "car_id", updated.ID)
		fmt.Fprintln(a.out, safeErrorMessage(err))
		return
	}

	fmt.Fprintln(a.out, "Listing updated.")
}

// deleteCar removes a listing after confirmation.
func (a *App) deleteCar(ctx context.Context, args []string) {
	user := a.requireAdmin()
	if user == nil {
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(a.out, "usage: delcar <car-id>")
		return
	}

	car := a.findCar(args[0])
	if car == nil {
		fmt.Fprintln(a.out, "No such car.")
		return
	}
	if car.OwnerID != "" && car.OwnerID != user.ID {
		fmt.Fprintln(a.out, "You may only delete your own listings.")
		return
	}

	if !a.confirm(fmt.Sprintf("Delete %q?", car.Title)) {
		return
	}
	if err := a.listings.DeleteCar(ctx, car.ID); err != nil {
		a.logger.Error("failed to delete car", "error", err, "car_id", car.ID)
		fmt.Fprintln(a.out, safeErrorMessage(err))
		return
	}

	fmt.Fprintln(a.out, "Listing deleted.")
}
