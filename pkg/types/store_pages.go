package types

import "database/sql/driver"

// AboutUs is the store's about-page document persisted as JSONB.
type AboutUs struct {
	Story      string   `json:"story"`
	Mission    string   `json:"mission,omitempty"`
	Vision     string   `json:"vision,omitempty"`
	Highlights []string `json:"highlights,omitempty"`
}

// IsZero reports whether the document carries no content at all.
func (a AboutUs) IsZero() bool {
	return a.Story == "" && a.Mission == "" && a.Vision == "" && len(a.Highlights) == 0
}

func (a AboutUs) Value() (driver.Value, error) {
	return jsonbValue(a)
}

func (a *AboutUs) Scan(value interface{}) error {
	return jsonbScan(a, value)
}

// ContactChannels groups the ways a shopper can reach the store.
type ContactChannels struct {
	Phone           string `json:"phone,omitempty"`
	Email           string `json:"email,omitempty"`
	WhatsAppSupport string `json:"whats_app_support,omitempty"`
	Address         string `json:"address,omitempty"`
}

func (c ContactChannels) Value() (driver.Value, error) {
	return jsonbValue(c)
}

func (c *ContactChannels) Scan(value interface{}) error {
	return jsonbScan(c, value)
}

// BusinessHour describes one weekday's opening window, times as "HH:MM".
type BusinessHour struct {
	Day       string `json:"day"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	IsOpen    bool   `json:"is_open"`
}

// BusinessHours is the weekly schedule persisted as JSONB.
type BusinessHours []BusinessHour

func (b BusinessHours) Value() (driver.Value, error) {
	if b == nil {
		return "[]", nil
	}
	return jsonbValue(b)
}

func (b *BusinessHours) Scan(value interface{}) error {
	return jsonbScan(b, value)
}

// ForDay returns the schedule entry for the named weekday, if present.
func (b BusinessHours) ForDay(day string) *BusinessHour {
	for i := range b {
		if b[i].Day == day {
			return &b[i]
		}
	}
	return nil
}

// QuickHelpEntry is a single contact-page FAQ item.
type QuickHelpEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QuickHelp is the contact page FAQ list persisted as JSONB.
type QuickHelp []QuickHelpEntry

func (q QuickHelp) Value() (driver.Value, error) {
	if q == nil {
		return "[]", nil
	}
	return jsonbValue(q)
}

func (q *QuickHelp) Scan(value interface{}) error {
	return jsonbScan(q, value)
}

// SocialLinkItem is one owner-curated link, as entered (no normalization).
type SocialLinkItem struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// SocialLinkList is the store's raw link list persisted as JSONB.
type SocialLinkList []SocialLinkItem

func (l SocialLinkList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return jsonbValue(l)
}

func (l *SocialLinkList) Scan(value interface{}) error {
	return jsonbScan(l, value)
}
