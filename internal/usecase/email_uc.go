package usecase

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/rs/zerolog"

	"content-studio/internal/domain"
	"content-studio/internal/domain/ports/adapter"
)

// EmailImage describes one gallery image referenced in an outgoing email.
type EmailImage struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Model string `json:"model"`
	Size  int64  `json:"size"`
}

type SendImagesInput struct {
	Recipient string       `json:"recipient"`
	Subject   string       `json:"subject"`
	Message   string       `json:"message"`
	Images    []EmailImage `json:"images"`
}

// EmailUseCase renders and sends the share-by-email message for a set of
// gallery images.
type EmailUseCase interface {
	SendImages(ctx context.Context, in SendImagesInput) error
}

var _ EmailUseCase = (*emailUC)(nil)

type emailUC struct {
	mailer adapter.Mailer
	log    *zerolog.Logger
}

func NewEmailUseCase(mailer adapter.Mailer, logger *zerolog.Logger) EmailUseCase {
	l := logger.With().Str("component", "email_uc").Logger()
	return &emailUC{mailer: mailer, log: &l}
}

func (uc *emailUC) SendImages(ctx context.Context, in SendImagesInput) error {
	if strings.TrimSpace(in.Recipient) == "" || !strings.Contains(in.Recipient, "@") {
		return fmt.Errorf("%w: valid recipient is required", domain.ErrInvalidArgument)
	}
	if strings.TrimSpace(in.Subject) == "" {
		return fmt.Errorf("%w: subject is required", domain.ErrInvalidArgument)
	}
	if len(in.Images) == 0 {
		return fmt.Errorf("%w: no images provided", domain.ErrInvalidArgument)
	}

	err := uc.mailer.Send(ctx, adapter.Email{
		To:       in.Recipient,
		Subject:  in.Subject,
		TextBody: textBody(in.Message, in.Images),
		HTMLBody: htmlBody(in.Message, in.Images),
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("recipient", in.Recipient).Int("images", len(in.Images)).Msg("image email sent")
	return nil
}

func textBody(message string, images []EmailImage) string {
	var b strings.Builder
	if message != "" {
		b.WriteString(message)
		b.WriteString("\n")
	}
	b.WriteString("\n--- Images ---\n")
	for i, img := range images {
		fmt.Fprintf(&b, "\n%d. %s\n   Model: %s\n   Size: %s\n   URL: %s\n",
			i+1, img.Name, img.Model, formatFileSize(img.Size), img.URL)
	}
	b.WriteString("\nGenerated by Content Studio\n")
	return b.String()
}

func htmlBody(message string, images []EmailImage) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	if message != "" {
		fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(message))
	}
	b.WriteString("<h3>Images</h3><ul>")
	for _, img := range images {
		fmt.Fprintf(&b, `<li><a href="%s">%s</a> (%s, %s)</li>`,
			img.URL, html.EscapeString(img.Name), html.EscapeString(img.Model), formatFileSize(img.Size))
	}
	b.WriteString("</ul><p>Generated by Content Studio</p></body></html>")
	return b.String()
}

func formatFileSize(bytes int64) string {
	const unit = 1024
	if bytes <= 0 {
		return "0 B"
	}
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMG"[exp])
}
