package movie

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidInput = errors.New("invalid input")

const (
	MaxTitleLen = 60
	MaxYearLen  = 4
)

// 提示文案
const (
	MsgInvalidInput = "Invalid input."
	MsgCreated      = "Item created."
	MsgUpdated      = "Item updated."
	MsgDeleted      = "Item deleted"
)

// Input 是通过校验、已去除首尾空白的标题和年份
type Input struct {
	Title string `validate:"required,max=60"`
	Year  string `validate:"required,max=4"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate 先去首尾空白再校验；长度按字符数算，错误包含 ErrInvalidInput
func Validate(title, year string) (Input, error) {
	in := Input{Title: strings.TrimSpace(title), Year: strings.TrimSpace(year)}
	if err := validate.Struct(in); err != nil {
		return Input{}, errors.Join(ErrInvalidInput, err)
	}
	return in, nil
}
