package category

// Bidirectional lookup tables between abstract field types and the
// concrete keys of a word record. All three tables are total over
// AllFieldTypes; lookups never need a fallback.

// recordKeys maps a FieldType to the word-record key it reads.
var recordKeys = map[FieldType]string{
	FieldWord:            "rawWord",
	FieldMeaning:         "rawMeaning",
	FieldYomigana:        "yomigana",
	FieldExample:         "exampleSentence",
	FieldExampleYomigana: "exampleSentenceYomigana",
}

// editKeys maps a word-record key to its edit-form key.
var editKeys = map[string]string{
	"rawWord":                 "word",
	"rawMeaning":              "meaning",
	"yomigana":                "yomigana",
	"exampleSentence":         "example",
	"exampleSentenceYomigana": "exampleYomigana",
}

// defaultRoles maps a FieldType to its default style role.
var defaultRoles = map[FieldType]StyleRole{
	FieldWord:            RoleWord,
	FieldMeaning:         RoleMeaning,
	FieldYomigana:        RoleReading,
	FieldExample:         RoleExample,
	FieldExampleYomigana: RoleReading,
}

// RecordKey returns the word-record key a field type reads.
func RecordKey(f FieldType) string { return recordKeys[f] }

// EditKey returns the edit-form key for a word-record key.
func EditKey(recordKey string) string { return editKeys[recordKey] }

// DefaultRole returns the default style role of a field type.
func DefaultRole(f FieldType) StyleRole { return defaultRoles[f] }

// RoleFor resolves the effective role of a scalar spec: its explicit
// role if set, otherwise the field's default.
func RoleFor(s ScalarSpec) StyleRole {
	if s.Role != "" {
		return s.Role
	}
	return DefaultRole(s.Field)
}
