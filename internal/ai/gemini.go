package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	applog "saina/internal/log"
	"saina/internal/modules/session"
)

const geminiModel = "gemini-2.0-flash"

// Gemini implements Provider using Google's Gemini models.
type Gemini struct {
	client        *genai.Client
	classifyModel *genai.GenerativeModel
	extractModel  *genai.GenerativeModel
	replyModel    *genai.GenerativeModel
	log           zerolog.Logger
}

// NewGemini initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini: missing api key")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	// Classification must be deterministic.
	classify := client.GenerativeModel(geminiModel)
	classify.SetTemperature(0)

	// Force JSON response for structured extraction.
	extract := client.GenerativeModel(geminiModel)
	extract.ResponseMIMEType = "application/json"
	extract.SetTemperature(0.4)

	// User-facing replies get a looser temperature.
	reply := client.GenerativeModel(geminiModel)
	reply.SetTemperature(0.7)

	return &Gemini{
		client:        client,
		classifyModel: classify,
		extractModel:  extract,
		replyModel:    reply,
		log:           applog.Component("ai"),
	}, nil
}

// Close cleans up the Gemini client resources.
func (g *Gemini) Close() {
	g.client.Close()
}

// Classify maps the user's message to flight, hotel, or unknown.
func (g *Gemini) Classify(ctx context.Context, text string) session.Intent {
	prompt := fmt.Sprintf(`You are a smart travel assistant. The user is asking a question. Your task is to classify the request as one of:

- flight
- hotel
- unknown

Respond with only one word.
Message: %s`, text)

	raw, err := g.generate(ctx, g.classifyModel, prompt)
	if err != nil {
		g.log.Warn().Err(err).Msg("classification failed, treating as unknown")
		return session.IntentUnknown
	}
	return normalizeIntent(raw)
}

// Extract pulls trip slots out of the user's message. Any model or parse
// failure degrades to an empty patch.
func (g *Gemini) Extract(ctx context.Context, text string) session.SlotPatch {
	prompt := fmt.Sprintf(`You are a travel assistant. Extract the following fields from the user's message and return a single JSON object. Use null for any field the message does not mention.

Use this exact structure:
{
  "from": string or null,
  "to": string or null,
  "date": string or null,
  "adults": integer or null,
  "children": integer or null,
  "infants": integer or null,
  "name": string or null,
  "phone": string or null
}

User message:
%s`, text)

	raw, err := g.generate(ctx, g.extractModel, prompt)
	if err != nil {
		g.log.Warn().Err(err).Msg("extraction failed, merging nothing")
		return session.SlotPatch{}
	}
	return parseSlotRecord(raw)
}

// PromptMissing asks the model to request only the slots still missing.
func (g *Gemini) PromptMissing(ctx context.Context, sess session.Session) (string, error) {
	prompt := fmt.Sprintf(`شما یک بات دستیار سفر هستید. اطلاعاتی که از کاربر دارید ناقص است:

مبدأ: %s
مقصد: %s
تاریخ: %s
بزرگسال: %s
کودک: %s
نوزاد: %s
نام: %s
تلفن: %s

لطفاً فقط و فقط اطلاعاتی که وجود ندارد را خیلی مودبانه از کاربر بپرسید.`,
		slotOrDash(sess.Origin), slotOrDash(sess.Destination), slotOrDash(sess.TravelDate),
		countOrDash(sess.Adults), countOrDash(sess.Children), countOrDash(sess.Infants),
		slotOrDash(sess.ContactName), slotOrDash(sess.ContactPhone))

	return g.generate(ctx, g.replyModel, prompt)
}

// Summarize asks the model for a short Persian listing of the given offers.
// The caller is responsible for truncating the offer list.
func (g *Gemini) Summarize(ctx context.Context, offers []Offer, sess session.Session) (string, error) {
	rendered, err := json.MarshalIndent(offers, "", "  ")
	if err != nil {
		return "", fmt.Errorf("gemini: render offers: %w", err)
	}

	prompt := fmt.Sprintf(`شما یک دستیار سفر هوشمند هستید که به زبان فارسی پاسخ می‌دهد.

اطلاعات کاربر:
- مبدأ: %s
- مقصد: %s
- تاریخ: %s
- بزرگسال: %s
- کودک: %s
- نوزاد: %s

بر اساس لیست داده‌های زیر، تا ۳ گزینه‌ی مناسب را انتخاب کن و خیلی خلاصه، به صورت لیستی نمایش بده. در انتها بپرس: «آیا مایل به رزرو هستید؟ برای رزرو بنویسید: رزرو ✅»

لیست پروازها یا هتل‌ها:
%s`,
		slotOrDash(sess.Origin), slotOrDash(sess.Destination), slotOrDash(sess.TravelDate),
		countOrDash(sess.Adults), countOrDash(sess.Children), countOrDash(sess.Infants),
		rendered)

	return g.generate(ctx, g.replyModel, prompt)
}

// generate sends the prompt through the given model and returns the reply text.
func (g *Gemini) generate(ctx context.Context, model *genai.GenerativeModel, prompt string) (string, error) {
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini: API returned empty candidates")
	}

	var parts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		txt, ok := part.(genai.Text)
		if !ok || strings.TrimSpace(string(txt)) == "" {
			continue
		}
		parts = append(parts, string(txt))
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("gemini: API returned empty text parts")
	}
	return strings.TrimSpace(strings.Join(parts, "\n")), nil
}

func slotOrDash(v *string) string {
	if v == nil || *v == "" {
		return "نامشخص"
	}
	return *v
}

func countOrDash(v *int) string {
	if v == nil {
		return "نامشخص"
	}
	return strconv.Itoa(*v)
}
