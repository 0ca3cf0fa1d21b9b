package persona

import (
	"encoding/json"

	"github.com/louisbranch/zhpersona/internal/services/persona/projection"
)

// Record is one assembled persona.
type Record struct {
	Name           string   `json:"name"`
	Gender         string   `json:"gender"`
	Age            int      `json:"age"`
	BirthDate      string   `json:"birth_date"`
	IdentityNumber string   `json:"identity_number"`
	Email          string   `json:"email"`
	TempEmail      string   `json:"temp_email"`
	TempEmailURL   string   `json:"temp_email_url"`
	Username       string   `json:"username"`
	Password       string   `json:"password"`
	Ethnicity      string   `json:"ethnicity"`
	BankCard       string   `json:"bank_card"`
	BankName       string   `json:"bank_name"`
	MBTI           string   `json:"mbti"`
	Physical       Physical `json:"physical"`
	Hometown       Hometown `json:"hometown"`
	Workplace      Place    `json:"workplace"`
	PrimaryPhone   Phone    `json:"primary_phone"`
	Social         Social   `json:"social"`
	Internet       Internet `json:"internet"`

	SecondaryPhone *Phone `json:"secondary_phone,omitempty"`
	WorkLocation   *Place `json:"work_location,omitempty"`

	LifeStory   string `json:"life_story,omitempty"`
	ImagePrompt string `json:"image_prompt,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// Physical holds body measurements.
type Physical struct {
	Height    string `json:"height"`
	Weight    string `json:"weight"`
	BloodType string `json:"blood_type"`
}

// Hometown is the registered residence.
type Hometown struct {
	Province string `json:"province"`
	City     string `json:"city"`
	District string `json:"district"`
	Address  string `json:"address"`
	Postcode string `json:"postcode"`
}

// Place is a workplace address.
type Place struct {
	Province string `json:"province"`
	City     string `json:"city"`
	District string `json:"district"`
	Address  string `json:"address"`
}

// Phone is a mobile number with the place it is registered to.
type Phone struct {
	Number   string `json:"number"`
	Location string `json:"location"`
}

// Social holds education, work and account recovery details.
type Social struct {
	Education        string `json:"education"`
	Employment       string `json:"employment"`
	Job              string `json:"job"`
	Salary           string `json:"salary"`
	SecurityQuestion string `json:"security_question"`
	SecurityAnswer   string `json:"security_answer"`
}

// Internet holds device and web identity details.
type Internet struct {
	GUID      string `json:"guid"`
	UserAgent string `json:"user_agent"`
	OS        string `json:"os"`
	WebHome   string `json:"web_home"`
}

// Result is a generated record plus the projection requested for it.
type Result struct {
	Record Record
	// Fields is the dotted-path projection. Empty means the full record.
	Fields []string
	// Seed reproduces this record.
	Seed int64
}

// Map returns the projected record in generic form.
func (r Result) Map() (map[string]any, error) {
	return projection.Project(r.Record, r.Fields)
}

// MarshalJSON encodes the projected record.
func (r Result) MarshalJSON() ([]byte, error) {
	if len(r.Fields) == 0 {
		return json.Marshal(r.Record)
	}
	m, err := r.Map()
	if err != nil {
		return nil, err
	}
	return json.Marshal(m)
}
