package statement

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	apperrors "fintrack/internal/errors"
)

// DefaultDateLayout is DD/MM/YYYY, the layout every built-in bank uses.
const DefaultDateLayout = "02/01/2006"

// Schema describes one bank's statement layout. A table matches when every
// name in Columns is present in its header row. The variant lists name the
// candidate headers for each canonical field in priority order.
type Schema struct {
	Name        string   `mapstructure:"name"`
	Columns     []string `mapstructure:"columns"`
	Date        []string `mapstructure:"date"`
	Description []string `mapstructure:"description"`
	Debit       []string `mapstructure:"debit"`
	Credit      []string `mapstructure:"credit"`
	DateLayout  string   `mapstructure:"date_layout"`
}

var (
	dateVariants        = []string{"Date", "Txn Date", "Transaction Date"}
	descriptionVariants = []string{"Narration", "Description", "Transaction Details", "Particulars"}
	debitVariants       = []string{"Withdrawal Amount", "Debit", "Withdrawals", "Debit Amount"}
	creditVariants      = []string{"Deposit Amount", "Credit", "Deposits", "Credit Amount"}
)

func builtin(name string, columns ...string) Schema {
	return Schema{
		Name:        name,
		Columns:     columns,
		Date:        dateVariants,
		Description: descriptionVariants,
		Debit:       debitVariants,
		Credit:      creditVariants,
		DateLayout:  DefaultDateLayout,
	}
}

// Registry is an ordered list of schemas. Detection picks the first match.
type Registry struct {
	schemas []Schema
}

// DefaultRegistry returns the built-in banks in detection order.
func DefaultRegistry() *Registry {
	return &Registry{schemas: []Schema{
		builtin("ICICI", "Date", "Narration", "Withdrawal Amount", "Deposit Amount", "Balance"),
		builtin("SBI", "Txn Date", "Description", "Debit", "Credit", "Balance"),
		builtin("HDFC", "Date", "Particulars", "Withdrawals", "Deposits", "Balance"),
		builtin("Axis", "Transaction Date", "Transaction Details", "Debit Amount", "Credit Amount", "Balance"),
	}}
}

// LoadRegistry returns the built-in registry extended with the schemas in a
// YAML file under a top-level "banks" key. An empty path returns the
// built-ins unchanged.
func LoadRegistry(path string) (*Registry, error) {
	reg := DefaultRegistry()
	if path == "" {
		return reg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read statement formats: %w", err)
	}

	var extra []Schema
	if err := v.UnmarshalKey("banks", &extra); err != nil {
		return nil, fmt.Errorf("unmarshal statement formats: %w", err)
	}
	if err := reg.Register(extra...); err != nil {
		return nil, err
	}
	return reg, nil
}

// Register adds schemas. A schema whose name matches an existing one
// replaces it at the same position; new names are appended.
func (r *Registry) Register(schemas ...Schema) error {
	for _, s := range schemas {
		s, err := normalizeSchema(s)
		if err != nil {
			return err
		}
		replaced := false
		for i := range r.schemas {
			if strings.EqualFold(r.schemas[i].Name, s.Name) {
				r.schemas[i] = s
				replaced = true
				break
			}
		}
		if !replaced {
			r.schemas = append(r.schemas, s)
		}
	}
	return nil
}

// Schemas returns a copy of the registered schemas in detection order.
func (r *Registry) Schemas() []Schema {
	out := make([]Schema, len(r.schemas))
	copy(out, r.schemas)
	return out
}

// Detect returns the first schema whose required columns are all present.
func (r *Registry) Detect(t *Table) (Schema, error) {
	for _, s := range r.schemas {
		if matches(t, s) {
			return s, nil
		}
	}
	return Schema{}, apperrors.ErrUnsupportedFormat
}

func matches(t *Table, s Schema) bool {
	for _, col := range s.Columns {
		if !t.Has(col) {
			return false
		}
	}
	return true
}

func normalizeSchema(s Schema) (Schema, error) {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return s, fmt.Errorf("statement format without a name")
	}
	if len(s.Columns) == 0 {
		return s, fmt.Errorf("statement format %q lists no columns", s.Name)
	}
	if len(s.Date) == 0 {
		s.Date = dateVariants
	}
	if len(s.Description) == 0 {
		s.Description = descriptionVariants
	}
	if len(s.Debit) == 0 {
		s.Debit = debitVariants
	}
	if len(s.Credit) == 0 {
		s.Credit = creditVariants
	}
	if s.DateLayout == "" {
		s.DateLayout = DefaultDateLayout
	}
	return s, nil
}
