package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(itemID string) ([]byte, error)
}

type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(itemID string) ([]byte, error) {
	qrData := fmt.Sprintf("%s/api/menu/%s", g.BaseURL, itemID)
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}
