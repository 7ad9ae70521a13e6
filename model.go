package nexus

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/specs-nexus/nexus/completion"
	"github.com/specs-nexus/nexus/knowledge"
)

var (
	ErrEmptyQuery = errors.New("query is empty")
)

// DefaultTopK is the number of passages retrieved per chat turn when the
// caller does not ask for a specific count.
const DefaultTopK = 3

// RefusalAnswer is the literal sentence the model is instructed to return
// when the retrieved context cannot answer the question. It is model
// behavior, not an error path.
const RefusalAnswer = "I'm sorry, I do not have that information."

type Duration time.Duration

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d Duration) MarshalJSON() ([]byte, error) {
	str := d.Duration().String()
	return json.Marshal(str)
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	duration, err := time.ParseDuration(str)
	if err != nil {
		return err
	}

	*d = Duration(duration)
	return nil
}

func (d Duration) MarshalYAML() ([]byte, error) {
	str := d.Duration().String()
	return yaml.Marshal(str)
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var str string
	if err := value.Decode(&str); err != nil {
		return err
	}

	duration, err := time.ParseDuration(str)
	if err != nil {
		return err
	}

	*d = Duration(duration)
	return nil
}

type Config struct {
	Auth     AuthConfig     `yaml:"auth"`
	Database DatabaseConfig `yaml:"database"`
	Static   StaticConfig   `yaml:"static"`
	Chat     ChatConfig     `yaml:"chat"`
}

type AuthConfig struct {
	TokenTTL Duration `yaml:"tokenTTL"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type StaticConfig struct {
	Dir     string `yaml:"dir"`
	BaseURL string `yaml:"baseURL"`
}

type ChatConfig struct {
	Knowledge  knowledge.Config `yaml:"knowledge"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Completion CompletionConfig `yaml:"completion"`
}

type EmbeddingConfig struct {
	Model         string `yaml:"model"`
	CacheCapacity int    `yaml:"cacheCapacity"`
}

type CompletionConfig struct {
	BaseURL     string   `yaml:"baseURL"`
	Model       string   `yaml:"model"`
	MaxTokens   int      `yaml:"maxTokens"`
	Temperature *float64 `yaml:"temperature"`
	Timeout     Duration `yaml:"timeout"`
}

// ClientConfig translates the yaml form into the completion client's config.
func (c CompletionConfig) ClientConfig() completion.Config {
	return completion.Config{
		BaseURL:     c.BaseURL,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: c.Temperature,
		Timeout:     c.Timeout.Duration(),
	}
}

type Year string

const (
	Year1st Year = "1st Year"
	Year2nd Year = "2nd Year"
	Year3rd Year = "3rd Year"
	Year4th Year = "4th Year"
)

type ClearanceStatus string

const (
	ClearanceClear         ClearanceStatus = "Clear"
	ClearanceProcessing    ClearanceStatus = "Processing"
	ClearanceNotYetCleared ClearanceStatus = "Not Yet Cleared"
)

type PaymentStatus string

const (
	PaymentNotPaid   PaymentStatus = "Not Paid"
	PaymentVerifying PaymentStatus = "Verifying"
	PaymentPaid      PaymentStatus = "Paid"
)

type PaymentMethod string

const (
	PaymentMethodGCash   PaymentMethod = "gcash"
	PaymentMethodPayMaya PaymentMethod = "paymaya"
)

// ValidPaymentMethod reports whether the given method is one the platform
// accepts receipts for.
func ValidPaymentMethod(method PaymentMethod) bool {
	return method == PaymentMethodGCash || method == PaymentMethodPayMaya
}

type User struct {
	ID            int64      `json:"id"`
	Email         string     `json:"email"`
	Password      string     `json:"-"`
	StudentNumber string     `json:"student_number"`
	FullName      string     `json:"full_name"`
	Year          Year       `json:"year,omitempty"`
	Block         string     `json:"block,omitempty"`
	LastActive    *time.Time `json:"last_active,omitempty"`
}

type Officer struct {
	ID            int64  `json:"id"`
	Email         string `json:"email"`
	Password      string `json:"-"`
	StudentNumber string `json:"student_number"`
	FullName      string `json:"full_name"`
	Year          string `json:"year"`
	Block         string `json:"block"`
	Position      string `json:"position"`
	Archived      bool   `json:"-"`
}

type Event struct {
	ID                int64      `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Date              time.Time  `json:"date"`
	ImageURL          string     `json:"image_url,omitempty"`
	Location          string     `json:"location,omitempty"`
	RegistrationStart *time.Time `json:"registration_start,omitempty"`
	RegistrationEnd   *time.Time `json:"registration_end,omitempty"`
	Archived          bool       `json:"-"`
	ParticipantCount  int        `json:"participant_count"`
	IsParticipant     bool       `json:"is_participant"`
}

type Announcement struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ImageURL    string     `json:"image_url,omitempty"`
	Location    string     `json:"location,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	Archived    bool       `json:"-"`
}

// Clearance is one membership-fee record for one user and requirement.
// Members see these as memberships; officers track them as clearances.
type Clearance struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	Requirement   string          `json:"requirement"`
	Status        ClearanceStatus `json:"status"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	ReceiptPath   string          `json:"receipt_path,omitempty"`
	Amount        float64         `json:"amount"`
	Archived      bool            `json:"archived"`
	PaymentMethod PaymentMethod   `json:"payment_method,omitempty"`
	User          *UserInfo       `json:"user,omitempty"`
}

// UserInfo is the slim user view joined onto membership records.
type UserInfo struct {
	FullName string `json:"full_name"`
	Block    string `json:"block,omitempty"`
	Year     Year   `json:"year,omitempty"`
}

type QRCode struct {
	ID      int64  `json:"id"`
	GCash   string `json:"gcash,omitempty"`
	PayMaya string `json:"paymaya,omitempty"`
}

const promptTemplate = `You are SPECS Nexus Assistant, a helpful chatbot that uses only the context provided below to answer questions. SPECS Nexus is a comprehensive platform designed for a student organization. It streamlines membership registration, event participation, and announcement updates, helping members stay connected and informed. The platform has 5 main pages - Dashboard, Profile, Events, Announcements, and Memberships. If the context does not include the answer, respond with: "%s"

Context:
%s

User Query: %s
Answer:`

// BuildPrompt assembles the fixed-template grounded prompt for one chat
// turn. The context may be empty; the model then falls back to the refusal
// sentence on its own.
func BuildPrompt(context, query string) string {
	return fmt.Sprintf(promptTemplate, RefusalAnswer, context, query)
}

// JoinPassages concatenates retrieved passages in ranked order into the
// context block of the prompt.
func JoinPassages(passages []string) string {
	return strings.Join(passages, "\n\n")
}
