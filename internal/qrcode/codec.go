package qrcode

import (
	"encoding/base64"
	"encoding/json"
	"time"

	qrc "github.com/skip2/go-qrcode"
)

const imageSize = 300

// BadgePayload is the JSON embedded in every employee badge QR code.
type BadgePayload struct {
	EmployeeID string `json:"employeeId"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Timestamp  int64  `json:"timestamp"`
}

//go:generate mockgen -source=codec.go -destination=mock/codec_mock.go -package=mock
type Codec interface {
	Generate(employeeID, email, name string) (string, error)
}

type codec struct{}

func NewCodec() Codec {
	return &codec{}
}

// Generate renders the badge payload as a PNG data URL, the format stored on
// the employee row and rendered directly by browser <img> tags.
func (c *codec) Generate(employeeID, email, name string) (string, error) {
	payload := BadgePayload{
		EmployeeID: employeeID,
		Email:      email,
		Name:       name,
		Timestamp:  time.Now().UnixMilli(),
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	png, err := qrc.Encode(string(raw), qrc.Medium, imageSize)
	if err != nil {
		return "", err
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
