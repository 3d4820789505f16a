package notifier

import (
	"fmt"
	"strings"
)

// BookingNotice данные уведомления о новой записи
type BookingNotice struct {
	AppointmentID int64
	CustomerName  string
	CustomerPhone string
	CustomerEmail *string
	Vehicle       string
	Date          string // YYYY-MM-DD
	Time          string // HH:MM
	Services      []string
	Total         string
	QuoteRequired bool
}

// Subject тема письма
func (n *BookingNotice) Subject() string {
	return fmt.Sprintf("Appointment #%d confirmed for %s %s", n.AppointmentID, n.Date, n.Time)
}

// Body текст уведомления
func (n *BookingNotice) Body() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", n.CustomerName)
	fmt.Fprintf(&b, "your appointment #%d is booked for %s at %s.\n", n.AppointmentID, n.Date, n.Time)
	if n.Vehicle != "" {
		fmt.Fprintf(&b, "Vehicle: %s\n", n.Vehicle)
	}
	fmt.Fprintf(&b, "Services: %s\n", strings.Join(n.Services, ", "))
	if n.QuoteRequired {
		b.WriteString("Estimated total: we will confirm the final price after inspection.\n")
	} else {
		fmt.Fprintf(&b, "Estimated total: $%s\n", n.Total)
	}
	return b.String()
}

// AlertSubject тема оповещения магазина
func (n *BookingNotice) AlertSubject() string {
	return fmt.Sprintf("New appointment #%d on %s %s", n.AppointmentID, n.Date, n.Time)
}

// ShopAlert короткий текст оповещения магазина для SMS и письма
func (n *BookingNotice) ShopAlert() string {
	return fmt.Sprintf("New appointment #%d: %s %s, %s (%s). Services: %s.",
		n.AppointmentID, n.Date, n.Time, n.CustomerName, n.CustomerPhone, strings.Join(n.Services, ", "))
}
