package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Notifier receives every successful menu write.
// Satisfied by *notify.Dispatcher.
type Notifier interface {
	MenuChanged(ctx context.Context, outletID uuid.UUID, entity, action string, entityID uuid.UUID)
}

// notifyChange fans out a change detached from the request's cancellation,
// so a client hanging up cannot leave a stale snapshot behind.
func notifyChange(r *http.Request, n Notifier, outletID uuid.UUID, entity, action string, entityID uuid.UUID) {
	if n == nil {
		return
	}
	n.MenuChanged(context.WithoutCancel(r.Context()), outletID, entity, action, entityID)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode JSON response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// serverError logs err under op and hides it from the client.
func serverError(w http.ResponseWriter, r *http.Request, op string, err error) {
	log.Error().Err(err).Str("op", op).Str("path", r.URL.Path).Msg("request failed")
	writeError(w, http.StatusInternalServerError, "internal server error")
}

var errTrailingData = errors.New("unexpected data after JSON body")

// decodeJSON decodes a single JSON object, rejecting unknown fields.
func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}

// urlUUID parses a chi URL parameter as a UUID.
func urlUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23514"
}

var errNegativePrice = errors.New("negative price")

// parsePrice parses a non-negative decimal string.
func parsePrice(s string) (pgtype.Numeric, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return pgtype.Numeric{}, err
	}
	if d.IsNegative() {
		return pgtype.Numeric{}, errNegativePrice
	}
	var n pgtype.Numeric
	if err := n.Scan(d.String()); err != nil {
		return pgtype.Numeric{}, err
	}
	return n, nil
}

// parseOptionalPrice maps nil to SQL NULL.
func parseOptionalPrice(s *string) (pgtype.Numeric, error) {
	if s == nil {
		return pgtype.Numeric{}, nil
	}
	return parsePrice(*s)
}

// parseOptionalDecimal maps nil to nil.
func parseOptionalDecimal(s *string) (*decimal.Decimal, error) {
	if s == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// parseOptionalUUID maps nil and "" to SQL NULL.
func parseOptionalUUID(s *string) (pgtype.UUID, error) {
	if s == nil || *s == "" {
		return pgtype.UUID{}, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return pgtype.UUID{}, err
	}
	return pgtype.UUID{Bytes: id, Valid: true}, nil
}

func optText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}

func textPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}

func uuidPtr(u pgtype.UUID) *uuid.UUID {
	if !u.Valid {
		return nil
	}
	id := uuid.UUID(u.Bytes)
	return &id
}

func numericDecimal(n pgtype.Numeric) (decimal.Decimal, bool) {
	if !n.Valid {
		return decimal.Zero, false
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(val.(string))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// numericToString renders money with two decimals.
func numericToString(n pgtype.Numeric) string {
	d, _ := numericDecimal(n)
	return d.StringFixed(2)
}

// numericToStringPtr keeps SQL NULL as nil.
func numericToStringPtr(n pgtype.Numeric) *string {
	if !n.Valid {
		return nil
	}
	s := numericToString(n)
	return &s
}

// percentToStringPtr renders a rate with at least two decimals, keeping any
// finer digits the column stores (12.345 stays 12.345).
func percentToStringPtr(n pgtype.Numeric) *string {
	d, ok := numericDecimal(n)
	if !ok {
		return nil
	}
	s := d.StringFixed(2)
	if !d.Equal(d.Round(2)) {
		s = d.String()
	}
	return &s
}

func decimalPtrString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.StringFixed(2)
	return &s
}
