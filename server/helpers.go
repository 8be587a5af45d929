package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/leebenson/conform"
	log "github.com/sirupsen/logrus"
	errs "github.com/techagentng/studyfocus/errors"
	"github.com/techagentng/studyfocus/models"
)

var trans ut.Translator

func init() {
	english := en.New()
	uni := ut.New(english, english)
	trans, _ = uni.GetTranslator("en")

	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := enTranslations.RegisterDefaultTranslations(v, trans); err != nil {
		log.WithError(err).Warn("unable to register validation translations")
	}
}

// decode reads a JSON body into v, trims it by its conform tags and validates the binding tags.
func decode(c *gin.Context, v interface{}) error {
	if err := json.NewDecoder(c.Request.Body).Decode(v); err != nil {
		return errs.New("invalid JSON body", http.StatusBadRequest)
	}
	if err := conform.Strings(v); err != nil {
		return errs.New(err.Error(), http.StatusBadRequest)
	}
	if err := binding.Validator.ValidateStruct(v); err != nil {
		return errs.New(strings.Join(translateError(err), "; "), http.StatusBadRequest)
	}
	return nil
}

func translateError(err error) []string {
	var validationErrs validator.ValidationErrors
	if !stderrors.As(err, &validationErrs) {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		msgs = append(msgs, e.Translate(trans))
	}
	return msgs
}

// idParam parses a positive numeric path parameter.
func idParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errs.ErrInvalidParameter
	}
	return uint(id), nil
}

// GetValuesFromContext returns what Authorize stored for the request.
func GetValuesFromContext(c *gin.Context) (string, *models.User, *errs.Error) {
	tokenI, tokenExists := c.Get("access_token")
	userI, userExists := c.Get("user")
	if !tokenExists || !userExists {
		return "", nil, errs.New("forbidden", http.StatusForbidden)
	}
	token, ok := tokenI.(string)
	if !ok {
		return "", nil, errs.ErrInternalServerError
	}
	user, ok := userI.(*models.User)
	if !ok {
		return "", nil, errs.ErrInternalServerError
	}
	return token, user, nil
}
