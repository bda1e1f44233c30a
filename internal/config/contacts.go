package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/couchcryptid/weather-life/internal/domain"
	"gopkg.in/yaml.v3"
)

type contactsFile struct {
	Contacts []domain.EmergencyContact `yaml:"contacts"`
}

// DefaultContacts are the national emergency numbers plus one family
// member placeholder.
func DefaultContacts() []domain.EmergencyContact {
	return []domain.EmergencyContact{
		{ID: "1", Name: "Cảnh sát 113", Phone: "113", Relationship: "Emergency Services", Priority: 1},
		{ID: "2", Name: "Cứu hỏa 114", Phone: "114", Relationship: "Fire Department", Priority: 1},
		{ID: "3", Name: "Cấp cứu 115", Phone: "115", Relationship: "Medical Emergency", Priority: 1},
		{ID: "4", Name: "Nguyễn Văn A", Phone: "+84 901 234 567", Relationship: "Family Member", Priority: 2},
	}
}

// LoadContacts reads a YAML contact list and orders it by priority, keeping
// file order for equal priorities.
func LoadContacts(path string) ([]domain.EmergencyContact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read EMERGENCY_CONTACTS_FILE: %w", err)
	}

	var f contactsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse EMERGENCY_CONTACTS_FILE: %w", err)
	}
	if len(f.Contacts) == 0 {
		return nil, fmt.Errorf("EMERGENCY_CONTACTS_FILE %s lists no contacts", path)
	}

	for i, c := range f.Contacts {
		if c.Name == "" || c.Phone == "" {
			return nil, fmt.Errorf("EMERGENCY_CONTACTS_FILE entry %d needs a name and a phone", i)
		}
		if c.ID == "" {
			f.Contacts[i].ID = strconv.Itoa(i + 1)
		}
	}

	slices.SortStableFunc(f.Contacts, func(a, b domain.EmergencyContact) int {
		return a.Priority - b.Priority
	})
	return f.Contacts, nil
}
