package lifecycle

import (
	"context"
	"time"

	"github.com/AntonStoeckl/book-reservations-go/core"
)

// ReservationView is a reservation as presented to callers.
// Dates are formatted as YYYY-MM-DD and money is fixed to the fee policy's scale.
type ReservationView struct {
	ID                 core.ReservationID  `json:"id"`
	UserID             core.UserID         `json:"userId"`
	UserName           string              `json:"userName"`
	BookExternalID     core.BookExternalID `json:"bookExternalId"`
	BookTitle          string              `json:"bookTitle"`
	RentalDays         int                 `json:"rentalDays"`
	StartDate          string              `json:"startDate"`
	ExpectedReturnDate string              `json:"expectedReturnDate"`
	ActualReturnDate   string              `json:"actualReturnDate,omitempty"`
	DailyRate          string              `json:"dailyRate"`
	TotalFee           string              `json:"totalFee"`
	LateFee            string              `json:"lateFee"`
	AmountDue          string              `json:"amountDue"`
	Status             string              `json:"status"`
	CreatedAt          time.Time           `json:"createdAt"`
	Version            int                 `json:"version"`
	Reservation        core.Reservation    `json:"-"`
}

// viewBuilder enriches reservations with user names and book titles, looking each of them up only once.
type viewBuilder struct {
	users  map[core.UserID]string
	titles map[core.BookExternalID]string
	s      *Service
}

func (s *Service) newViewBuilder() *viewBuilder {
	return &viewBuilder{
		users:  make(map[core.UserID]string),
		titles: make(map[core.BookExternalID]string),
		s:      s,
	}
}

func (b *viewBuilder) build(ctx context.Context, r core.Reservation) (ReservationView, error) {
	userName, err := b.userName(ctx, r.UserID)
	if err != nil {
		return ReservationView{}, err
	}

	bookTitle, err := b.bookTitle(ctx, r.BookExternalID)
	if err != nil {
		return ReservationView{}, err
	}

	policy := b.s.feePolicy

	view := ReservationView{
		ID:                 r.ID,
		UserID:             r.UserID,
		UserName:           userName,
		BookExternalID:     r.BookExternalID,
		BookTitle:          bookTitle,
		RentalDays:         r.RentalDays,
		StartDate:          core.FormatDate(r.StartDate),
		ExpectedReturnDate: core.FormatDate(r.ExpectedReturnDate),
		DailyRate:          r.DailyRate.StringFixed(policy.Scale),
		TotalFee:           r.TotalFee.StringFixed(policy.Scale),
		LateFee:            r.LateFee.StringFixed(policy.Scale),
		AmountDue:          policy.SettlementAmount(r).StringFixed(policy.Scale),
		Status:             r.Status.String(),
		CreatedAt:          r.CreatedAt,
		Version:            r.Version,
		Reservation:        r,
	}

	if r.ActualReturnDate != nil {
		view.ActualReturnDate = core.FormatDate(*r.ActualReturnDate)
	}

	return view, nil
}

func (b *viewBuilder) buildAll(ctx context.Context, reservations []core.Reservation) ([]ReservationView, error) {
	views := make([]ReservationView, 0, len(reservations))

	for _, reservation := range reservations {
		view, err := b.build(ctx, reservation)
		if err != nil {
			return nil, err
		}

		views = append(views, view)
	}

	return views, nil
}

func (b *viewBuilder) userName(ctx context.Context, id core.UserID) (string, error) {
	if name, ok := b.users[id]; ok {
		return name, nil
	}

	user, err := b.s.unitOfWork.Repositories().Users.GetUser(ctx, id)
	if err != nil {
		return "", err
	}

	b.users[id] = user.Name

	return user.Name, nil
}

func (b *viewBuilder) bookTitle(ctx context.Context, id core.BookExternalID) (string, error) {
	if title, ok := b.titles[id]; ok {
		return title, nil
	}

	book, err := b.s.unitOfWork.Repositories().Books.GetBookByExternalID(ctx, id)
	if err != nil {
		return "", err
	}

	b.titles[id] = book.Title

	return book.Title, nil
}
