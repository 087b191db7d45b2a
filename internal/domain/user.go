package domain

// DateLayout is the calendar-date format used for every persisted date field.
const DateLayout = "2006-01-02"

type User struct {
	Phone          string
	Name           string
	UserID         string
	IsAdmin        bool
	RegisteredDate string
}
