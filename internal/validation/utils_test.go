package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/pharmacy-service/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type customRequest struct {
	Name string `json:"name"`
}

func (r *customRequest) Validate() error {
	if r.Name == "" {
		return CustomValidationErrors{{Field: "name", Code: errs.FieldCodeRequired, Message: "This field is required."}}
	}
	return nil
}

func newContext(body string) echo.Context {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func requireHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestBindAndValidateCustomErrors(t *testing.T) {
	httpErr := requireHTTPError(t, BindAndValidate(newContext(`{"name":""}`), &customRequest{}))

	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, errs.FieldError{Field: "name", Code: errs.FieldCodeRequired, Error: "This field is required."}, httpErr.Errors[0])
}

func TestBindAndValidateMalformedBody(t *testing.T) {
	httpErr := requireHTTPError(t, BindAndValidate(newContext(`{"name":`), &customRequest{}))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "BAD_REQUEST", httpErr.Code)
	assert.Nil(t, httpErr.Errors)
}

func TestBindAndValidateSuccess(t *testing.T) {
	req := &customRequest{}
	require.NoError(t, BindAndValidate(newContext(`{"name":"Acme"}`), req))
	assert.Equal(t, "Acme", req.Name)
}

func TestExtractValidationErrorUnknownError(t *testing.T) {
	fieldErrors := extractValidationError(errors.New("cross-field rule failed"))

	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "non_field_errors", fieldErrors[0].Field)
}

func TestCheckNilIsValid(t *testing.T) {
	assert.NoError(t, Check(nil))
}

func TestCheckWrapsFieldErrors(t *testing.T) {
	err := Check(CustomValidationErrors{
		{Field: "name", Code: errs.FieldCodeRequired, Message: "This field is required."},
		{Field: "address", Code: errs.FieldCodeMaxLength, Message: "Ensure this field has no more than 300 characters."},
	})

	httpErr := requireHTTPError(t, err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, errs.CodeValidationFailed, httpErr.Code)
	require.Len(t, httpErr.Errors, 2)
	assert.Equal(t, "address", httpErr.Errors[1].Field)
}
