package generator

import (
	"bytes"
	"image/png"

	"github.com/fogleman/gg"
	"github.com/nfnt/resize"
	"github.com/skip2/go-qrcode"
)

// ListingCard renders a square card with a QR code pointing at a
// listing deep link, attached to new-listing push notifications.
type ListingCard struct {
	cfg *CardConfig
}

func NewListingCard(cfg *CardConfig) *ListingCard {
	if cfg == nil {
		cfg = Roastline
	}
	return &ListingCard{
		cfg: cfg,
	}
}

// Render returns the card encoding the given link as PNG bytes.
func (g *ListingCard) Render(link string) ([]byte, error) {
	qr, err := qrcode.New(link, qrcode.RecoveryLevel(g.cfg.RecoveryLevel))
	if err != nil {
		return nil, err
	}
	qr.DisableBorder = true

	inner := g.cfg.Size - 2*g.cfg.Margin
	qrImage := resize.Resize(uint(inner), uint(inner), qr.Image(inner*2), resize.Lanczos3)

	dc := gg.NewContext(g.cfg.Size, g.cfg.Size)
	dc.SetColor(g.cfg.Background)
	dc.Clear()
	dc.DrawRoundedRectangle(
		float64(g.cfg.Margin)/2,
		float64(g.cfg.Margin)/2,
		float64(g.cfg.Size-g.cfg.Margin),
		float64(g.cfg.Size-g.cfg.Margin),
		g.cfg.CornerRadius,
	)
	dc.SetColor(g.cfg.Panel)
	dc.Fill()
	dc.DrawImage(qrImage, g.cfg.Margin, g.cfg.Margin)

	var buf bytes.Buffer
	if err = png.Encode(&buf, dc.Image()); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
