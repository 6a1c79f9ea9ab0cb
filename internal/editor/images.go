package editor

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/nexuszen/quotation-studio/internal/invoice"
)

// ImageSlot names one of the optional images of a quotation.
type ImageSlot string

const (
	SlotLogo      ImageSlot = "logo"
	SlotSignature ImageSlot = "signature"
)

func ParseImageSlot(s string) (ImageSlot, error) {
	switch ImageSlot(s) {
	case SlotLogo, SlotSignature:
		return ImageSlot(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSlot, s)
}

// SetImage stores uri in the slot. An empty uri clears it.
func SetImage(data invoice.InvoiceData, slot ImageSlot, uri string) (invoice.InvoiceData, error) {
	next := data
	switch slot {
	case SlotLogo:
		next.LogoURL = uri
	case SlotSignature:
		next.SignatureURL = uri
	default:
		return data, fmt.Errorf("%w: %q", ErrUnknownSlot, slot)
	}
	return next, nil
}

// EncodeDataURI wraps raw bytes in a base64 data URI. The media type is
// sniffed from the content and only labels the payload; it is not checked.
func EncodeDataURI(raw []byte) string {
	mediaType, _, _ := strings.Cut(mimetype.Detect(raw).String(), ";")
	return "data:" + strings.TrimSpace(mediaType) + ";base64," + base64.StdEncoding.EncodeToString(raw)
}

func encodeFile(ctx context.Context, file openapi_types.File) (string, error) {
	raw, err := file.Bytes()
	if err != nil {
		return "", fmt.Errorf("read upload %q: %w", file.Filename(), err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return EncodeDataURI(raw), nil
}
