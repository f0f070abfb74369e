// Package admin holds the state of the settings screen: the model
// credentials form and the "ingest a URL" form. It knows nothing about
// rendering; ui.AdminPanel binds its exported fields to inputs.
package admin

import (
	"context"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/go-playground/validator/v10"

	"github.com/zhubert/kavosh/internal/api"
	"github.com/zhubert/kavosh/internal/errors"
	"github.com/zhubert/kavosh/internal/logger"
)

// User-facing messages.
const (
	MsgFieldsRequired = "لطفاً همه فیلدها را پر کنید"
	MsgConfigSaved    = "✅ تنظیمات با موفقیت ذخیره شد"
	MsgConfigFailed   = "خطا در ذخیره تنظیمات"
	MsgURLRequired    = "لطفاً URL را وارد کنید"
	MsgURLIngested    = "✅ URL با موفقیت اضافه شد"
	MsgIngestFailed   = "خطا در افزودن URL"
)

// Backend is the subset of the API client the settings screen uses.
type Backend interface {
	GetConfig(ctx context.Context) (*api.AdminConfig, error)
	SaveConfig(ctx context.Context, update api.ConfigUpdate) (*api.Ack, error)
	IngestURL(ctx context.Context, req api.IngestRequest) (*api.IngestResult, error)
}

// BannerKind says how a banner should be styled.
type BannerKind int

const (
	BannerNone BannerKind = iota
	BannerSuccess
	BannerError
)

// Banner is the single status line shown above the forms.
type Banner struct {
	Kind BannerKind
	Text string
}

// Credentials is the validated shape of the credentials form.
type Credentials struct {
	APIKey  string `validate:"required"`
	BaseURL string `validate:"required"`
}

// IngestInput is the validated shape of the ingest form.
type IngestInput struct {
	URL string `validate:"required"`
}

// Messages produced by the commands below.
type (
	ConfigLoadedMsg struct {
		Config *api.AdminConfig
		Err    error
	}
	ConfigSavedMsg struct {
		Ack *api.Ack
		Err error
	}
	IngestedMsg struct {
		Result *api.IngestResult
		Err    error
	}
)

var validate = validator.New()

// Form is the settings screen state. APIKey, BaseURL and IngestURL are the
// draft field values; inputs write to them through pointers.
type Form struct {
	APIKey    string
	BaseURL   string
	IngestURL string

	backend   Backend
	current   *api.AdminConfig
	loadedURL string // base URL of the last load, to tell drafts apart
	banner    Banner
	saving    bool
	ingesting bool
	log       *slog.Logger
}

// New returns an empty form talking to backend.
func New(backend Backend) *Form {
	return &Form{
		backend: backend,
		log:     logger.ComponentLogger("Admin"),
	}
}

// Current returns the last configuration fetched from the backend, or nil.
func (f *Form) Current() *api.AdminConfig {
	return f.current
}

// Banner returns the status banner.
func (f *Form) Banner() Banner {
	return f.banner
}

// Saving reports whether a save request is outstanding.
func (f *Form) Saving() bool {
	return f.saving
}

// Ingesting reports whether an ingest request is outstanding.
func (f *Form) Ingesting() bool {
	return f.ingesting
}

// Busy reports whether any request is outstanding.
func (f *Form) Busy() bool {
	return f.saving || f.ingesting
}

// LoadConfig fetches the current configuration. Failures are only logged.
// The base URL field is prefilled only while it holds no draft.
func (f *Form) LoadConfig() tea.Cmd {
	backend := f.backend
	return func() tea.Msg {
		cfg, err := backend.GetConfig(context.Background())
		return ConfigLoadedMsg{Config: cfg, Err: err}
	}
}

// SaveConfig validates the credentials and returns the command that sends
// them. A validation failure sets an error banner and returns the error
// with a nil command.
func (f *Form) SaveConfig() (tea.Cmd, error) {
	const op = errors.Op("admin.SaveConfig")

	if f.Busy() {
		return nil, nil
	}

	creds := Credentials{
		APIKey:  strings.TrimSpace(f.APIKey),
		BaseURL: strings.TrimSpace(f.BaseURL),
	}
	if err := check(op, creds); err != nil {
		f.banner = Banner{Kind: BannerError, Text: MsgFieldsRequired}
		return nil, err
	}

	f.saving = true
	f.banner = Banner{}
	f.log.Info("saving model settings", "baseURL", creds.BaseURL)

	backend := f.backend
	update := api.ConfigUpdate{APIKey: creds.APIKey, BaseURL: creds.BaseURL}
	return func() tea.Msg {
		ack, err := backend.SaveConfig(context.Background(), update)
		return ConfigSavedMsg{Ack: ack, Err: err}
	}, nil
}

// Ingest validates the URL field and returns the command that submits it.
func (f *Form) Ingest() (tea.Cmd, error) {
	const op = errors.Op("admin.Ingest")

	if f.Busy() {
		return nil, nil
	}

	input := IngestInput{URL: strings.TrimSpace(f.IngestURL)}
	if err := check(op, input); err != nil {
		f.banner = Banner{Kind: BannerError, Text: MsgURLRequired}
		return nil, err
	}

	f.ingesting = true
	f.banner = Banner{}
	f.log.Info("ingesting url", "url", input.URL)

	backend := f.backend
	req := api.IngestRequest{URL: input.URL}
	return func() tea.Msg {
		res, err := backend.IngestURL(context.Background(), req)
		return IngestedMsg{Result: res, Err: err}
	}, nil
}

// Update folds a result message into the form. It returns a follow-up
// command when one is needed (a reload after a successful save).
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ConfigLoadedMsg:
		if msg.Err != nil {
			f.log.Warn("failed to load model settings", "error", msg.Err)
			return nil
		}
		f.current = msg.Config
		if msg.Config != nil {
			// Prefill unless the user has typed a different URL meanwhile
			if f.BaseURL == "" || f.BaseURL == f.loadedURL {
				f.BaseURL = msg.Config.BaseURL
			}
			f.loadedURL = msg.Config.BaseURL
		}

	case ConfigSavedMsg:
		f.saving = false
		if msg.Err != nil {
			f.log.Warn("failed to save model settings", "error", msg.Err)
			f.banner = Banner{Kind: BannerError, Text: api.UserMessage(msg.Err, MsgConfigFailed)}
			return nil
		}
		if msg.Ack != nil && msg.Ack.Success != nil && !*msg.Ack.Success {
			f.banner = Banner{Kind: BannerError, Text: nonEmpty(msg.Ack.Message, MsgConfigFailed)}
			return nil
		}
		f.banner = Banner{Kind: BannerSuccess, Text: MsgConfigSaved}
		f.APIKey = ""
		return f.LoadConfig()

	case IngestedMsg:
		f.ingesting = false
		if msg.Err != nil {
			f.log.Warn("ingest failed", "error", msg.Err)
			f.banner = Banner{Kind: BannerError, Text: api.UserMessage(msg.Err, MsgIngestFailed)}
			return nil
		}
		if msg.Result.Failed() {
			f.banner = Banner{Kind: BannerError, Text: nonEmpty(msg.Result.Message, MsgIngestFailed)}
			return nil
		}
		text := MsgURLIngested
		if msg.Result != nil && msg.Result.Message != "" {
			text = msg.Result.Message
		}
		f.banner = Banner{Kind: BannerSuccess, Text: text}
		f.IngestURL = ""
	}
	return nil
}

// ClearBanner removes the status banner.
func (f *Form) ClearBanner() {
	f.banner = Banner{}
}

// check runs the struct validator and reports the first missing field.
func check(op errors.Op, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return errors.FieldRequired(op, verrs[0].Field())
	}
	return errors.E(op, errors.KindInvalid, err)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
