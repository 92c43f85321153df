package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/metinatakli/fitgain-payments/internal/domain"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	maxBodyBytes    = 1 << 20
	publishTimeout  = 5 * time.Second
)

func (app *Application) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)

	return nil
}

func (app *Application) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)

		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")

		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)

		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")

		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)

		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)

		default:
			return fmt.Errorf("body contains invalid data: %w", err)
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

type paginationInput struct {
	Page     int `json:"page" validate:"min=1,max=10000"`
	PageSize int `json:"pageSize" validate:"min=1,max=100"`
}

// readPagination applies defaults to the optional page parameters and
// validates the result.
func (app *Application) readPagination(page, pageSize *int) (domain.Pagination, error) {
	input := paginationInput{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}

	if page != nil {
		input.Page = *page
	}
	if pageSize != nil {
		input.PageSize = *pageSize
	}

	err := app.validator.Struct(input)
	if err != nil {
		return domain.Pagination{}, err
	}

	return domain.Pagination{
		Page:     input.Page,
		PageSize: input.PageSize,
	}, nil
}

// background runs fn in a goroutine tracked by the application wait group
// so shutdown can wait for it. Panics are logged, not propagated.
func (app *Application) background(logger *slog.Logger, fn func()) {
	app.wg.Add(1)

	go func() {
		defer app.wg.Done()

		defer func() {
			if err := recover(); err != nil {
				logger.Error("background task panicked", "error", fmt.Sprintf("%v", err))
			}
		}()

		fn()
	}()
}

// notify mails recipient in the background. Delivery failures are logged only.
func (app *Application) notify(r *http.Request, recipient, templateFile string, data map[string]any) {
	logger := app.contextGetLogger(r)

	if recipient == "" {
		logger.Warn("skipping notification without recipient", "template", templateFile)
		return
	}

	app.background(logger, func() {
		err := app.mailer.Send(recipient, templateFile, data)
		if err != nil {
			logger.Error("failed to send notification", "template", templateFile, "error", err)
		}
	})
}

// publish emits events for a state change that has already been committed.
// The request may be cancelled by then, so publishing gets its own deadline.
func (app *Application) publish(r *http.Request, events ...domain.Event) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), publishTimeout)
	defer cancel()

	for _, event := range events {
		if event.OccurredAt.IsZero() {
			event.OccurredAt = time.Now().UTC()
		}

		err := app.publisher.Publish(ctx, event)
		if err != nil {
			app.contextGetLogger(r).Error("failed to publish event", "event", event.Type, "error", err)
		}
	}
}
