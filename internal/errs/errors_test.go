package errs

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToHTTP(t *testing.T) {
	req := require.New(t)

	req.Equal(http.StatusBadRequest, ToHTTP(fmt.Errorf("bad id: %w", ErrInvalidInput)))
	req.Equal(http.StatusUnauthorized, ToHTTP(ErrUnauthorized))
	req.Equal(http.StatusForbidden, ToHTTP(ErrForbidden))
	req.Equal(http.StatusNotFound, ToHTTP(ErrNotFound))
	req.Equal(http.StatusBadGateway, ToHTTP(fmt.Errorf("node down: %w", ErrUpstream)))
	req.Equal(http.StatusInternalServerError, ToHTTP(ErrConfig))
	req.Equal(http.StatusInternalServerError, ToHTTP(fmt.Errorf("boom")))
}
