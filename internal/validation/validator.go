package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rosa-mystica-tuntang/web/internal/models"
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// New builds a ValidationError for field
func New(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError reports whether err carries a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

var validate = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New()
	// Report JSON names so messages match what the client sent
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// ValidateComment trims a public comment submission in place and checks it
func ValidateComment(in *models.CommentInput) error {
	in.ContentID = strings.TrimSpace(in.ContentID)
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)

	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return New(fe.Field(), "Content ID, name, and message are required")
		}
	}
	fe := fieldErrs[0]
	switch fe.Field() {
	case "name":
		return New("name", "Name must be at least 2 characters long")
	case "message":
		return New("message", "Message must be at least 5 characters long")
	case "email":
		return &ValidationError{Field: "email", Message: "Email address is not valid", Value: in.Email}
	default:
		return New(fe.Field(), fmt.Sprintf("%s is invalid", fe.Field()))
	}
}

// ValidateArticle checks the fields required to create an article
func ValidateArticle(in *models.ArticleInput) error {
	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		return New("title", "Title is required")
	}
	return ValidateArticlePatch(in)
}

// ValidateArticlePatch checks the fields present in an update
func ValidateArticlePatch(in *models.ArticleInput) error {
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return New("title", "Title cannot be empty")
		}
		if utf8.RuneCountInString(title) > 200 {
			return New("title", "Title must be at most 200 characters long")
		}
		in.Title = &title
	}
	return nil
}

// ValidateImageTitle checks the title of an image upload
func ValidateImageTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", New("title", "Title is required")
	}
	if utf8.RuneCountInString(title) > 200 {
		return "", New("title", "Title must be at most 200 characters long")
	}
	return title, nil
}

// ValidateDonation trims a donor submission in place and returns the parsed amount
func ValidateDonation(in *models.DonationInput) (int64, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.City = strings.TrimSpace(in.City)
	if in.Name == "" || in.City == "" || strings.TrimSpace(in.Amount) == "" {
		return 0, New("", "All fields are required")
	}
	return ParseAmount(in.Amount)
}

// ParseAmount reads rupiah input such as "Rp 1.500.000" or "250000"
func ParseAmount(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if len(s) >= 2 && strings.EqualFold(s[:2], "rp") {
		s = s[2:]
	}
	s = strings.NewReplacer(" ", "", ".", "", "\t", "").Replace(s)

	amount, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &ValidationError{Field: "amount", Message: "Amount must be a number", Value: raw}
	}
	if amount <= 0 {
		return 0, &ValidationError{Field: "amount", Message: "Amount must be positive", Value: raw}
	}
	return amount, nil
}

// ParseDonationStatus accepts only the enumerated donation statuses, spelled
// exactly as stored
func ParseDonationStatus(raw string) (models.DonationStatus, error) {
	status := models.DonationStatus(raw)
	if !models.ValidDonationStatuses[status] {
		return "", &ValidationError{Field: "status", Message: "Invalid status", Value: raw}
	}
	return status, nil
}

// ParseContentType accepts an empty filter or one of the content types
func ParseContentType(raw string) (models.ContentType, error) {
	if raw == "" {
		return "", nil
	}
	t := models.ContentType(strings.ToUpper(strings.TrimSpace(raw)))
	if !models.ValidContentTypes[t] {
		return "", &ValidationError{Field: "type", Message: "type must be one of: IMAGE, ARTICLE", Value: raw}
	}
	return t, nil
}

// IsValidID reports whether id is a well-formed record identifier
func IsValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
