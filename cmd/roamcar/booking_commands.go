package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/roamcar/roamcar/internal/domain"
)

// book runs the booking form: dates in, live quote out, then save with the
// renter snapshot from the current session.
func (a *App) book(ctx context.Context, args []string) {
	user := a.requireLogin()
	if user == nil {
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(a.out, "usage: book <car-id>")
		return
	}

	car := a.findCar(args[0])
	if car == nil {
		fmt.Fprintln(a.out, "No such car.")
		return
	}

	start := a.prompt("Start date (YYYY-MM-DD)")
	end := a.prompt("End date (YYYY-MM-DD)")

	days, total, err := domain.Quote(start, end, car.PricePerDay)
	if err != nil {
		fmt.Fprintln(a.out, safeErrorMessage(err))
		return
	}
	fmt.Fprintf(a.out, "%s for %d day(s): %.0f total\n", car.Title, days, total)
	if !a.confirm("Confirm booking?") {
		return
	}

	booking := domain.Booking{
		CarID:     car.ID,
		Start:     start,
		End:       end,
		UserID:    user.ID,
		UserName:  user.Name,
		UserPhone: user.Phone,
		Days:      days,
		Total:     total,
	}

	stored, err := a.listings.SaveBooking(ctx, booking)
	if err != nil {
		a.logger.Error("failed to save booking", "error", err)
		fmt.Fprintln(a.out, safeErrorMessage(err))
		return
	}

	fmt.Fprintf(a.out, "Booked! Reference %s.\n", stored.ID)
}

// renderBookings shows the renter's bookings and, for owners, bookings of
// their cars.
func (a *App) renderBookings(ctx context.Context) {
	user := a.requireLogin()
	if user == nil {
		return
	}

	mine, err := a.listings.BookingsByUser(ctx, user.ID)
	if err != nil {
		a.logger.Error("failed to list bookings", "error", err)
		fmt.Fprintln(a.out, safeErrorMessage(err))
		return
	}
	fmt.Fprintln(a.out, "Your bookings:")
	a.renderBookingTable(mine)

	owned, err := a.listings.BookingsByOwner(ctx, user.ID)
	if err != nil {
		a.logger.Error("failed to list owner bookings", "error", err)
		fmt.Fprintln(a.out, safeErrorMessage(err))
		return
	}
	if len(owned) > 0 {
		fmt.Fprintln(a.out, "Bookings of your cars:")
		a.renderBookingTable(owned)
	}
}

func (a *App) renderBookingTable(bookings []domain.Booking) {
	if len(bookings) == 0 {
		fmt.Fprintln(a.out, "  (none)")
		return
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCAR\tSTART\tEND\tDAYS\tTOTAL\tRENTER")
	for _, b := range bookings {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.0f\t%s\n",
			b.ID, b.CarTitle, b.Start, b.End, b.Days, b.Total, b.UserName)
	}
	_ = w.Flush()
}

// cancelBooking deletes a booking. Allowed for the renter and for the
// owner of the booked car.
func (a *App) cancelBooking(ctx context.Context, args []string) {
	user := a.requireLogin()
	if user == nil {
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(a.out, "usage: cancel <booking-id>")
		return
	}

	booking := a.findBooking(args[0])
	if booking == nil {
		fmt.Fprintln(a.out, "No such booking.")
		return
	}
	if booking.UserID != user.ID && booking.CarOwnerID != user.ID {
		fmt.Fprintln(a.out, "You may only cancel your own bookings.")
		return
	}

	if err := a.listings.DeleteBooking(ctx, booking.ID); err != nil {
		a.logger.Error("failed to delete booking", "error", err, "booking_id", booking.ID)
		fmt.Fprintln(a.out, safeErrorMessage(err))
		return
	}

	fmt.Fprintln(a.out, "Booking canceled.")
}
