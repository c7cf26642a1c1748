package httprpcadapter

import (
	"errors"
	"net/http"

	"github.com/behzade/storefront/internal/domain"
	"github.com/behzade/storefront/internal/httprpc"
)

func mapError(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return httprpc.StatusError{Status: http.StatusBadRequest, Err: err}
	case errors.Is(err, domain.ErrNotFound):
		return httprpc.StatusError{Status: http.StatusNotFound, Err: err}
	default:
		return err
	}
}
