package application

import (
	"errors"

	"btcwidget-service/internal/domain"
)

var ErrNotFound = domain.ErrNotFound
var ErrBadRequest = errors.New("bad request")
