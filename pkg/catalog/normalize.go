package catalog

import (
	"strconv"
	"strings"

	"github.com/footagedesk/catalogsync/pkg/models"
	"github.com/footagedesk/catalogsync/pkg/payments"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

// ErrMissingVID marks a row without a natural key. Such rows are dropped and
// counted as failures, never written.
var ErrMissingVID = errors.New("row has no vid")

// Row is one raw catalog row keyed by column name. Values are loosely typed:
// strings from spreadsheets, strings/numbers/objects from JSON payloads.
type Row map[string]interface{}

type NormalizeOptions struct {
	// StrictStructuredFields fails the row on malformed resolution/metadata
	// cells instead of substituting an empty object.
	StrictStructuredFields bool
}

// NormalizedRow is the validated intermediate form of a catalog row.
type NormalizedRow struct {
	Video   *models.VideoInfo
	Variant *models.DownloadVariant // nil when the row carries no tier data
	Prices  []payments.TierPrice
	// Warnings records lenient substitutions so data-quality problems stay
	// observable even when they don't fail the row.
	Warnings []string
}

// NormalizeRow coerces one raw row onto the two record shapes. Coercion is
// deterministic and never panics: unparseable ids become nil, unparseable
// flags become false. The stored title is the source title concatenated with
// the cut label, a quirk the storefront frontend depends on.
func NormalizeRow(row Row, opts NormalizeOptions) (*NormalizedRow, error) {
	vid := cellString(row["vid"])
	if vid == "" {
		return nil, errors.WithStack(ErrMissingVID)
	}

	normalized := &NormalizedRow{}
	cut := cellString(row["cut"])

	resolution, err := cellJSON(row["resolution"])
	if err != nil {
		if opts.StrictStructuredFields {
			return nil, errors.Wrapf(err, "vid %s: malformed resolution", vid)
		}
		normalized.Warnings = append(normalized.Warnings, "malformed resolution replaced with empty object")
		resolution = models.JSONMap{}
	}
	metadata, err := cellJSON(row["metadata"])
	if err != nil {
		if opts.StrictStructuredFields {
			return nil, errors.Wrapf(err, "vid %s: malformed metadata", vid)
		}
		normalized.Warnings = append(normalized.Warnings, "malformed metadata replaced with empty object")
		metadata = models.JSONMap{}
	}

	normalized.Video = &models.VideoInfo{
		VID:           vid,
		Cut:           cut,
		Title:         cellString(row["title"]) + cut,
		Keyword:       cellString(row["keyword"]),
		Detail:        cellString(row["detail"]),
		Format:        cellString(row["format"]),
		Framerate:     cellString(row["framerate"]),
		Resolution:    resolution,
		Metadata:      metadata,
		FootageServer: cellString(row["footageServer"]),
		Duration:      cellString(cell(row, "duration", "dulation")),
		DropFrame:     cellBool(cell(row, "DF", "df")),
		Push:          cellBool(row["push"]),
	}

	variant := &models.DownloadVariant{
		VID:     vid,
		EXID:    cellInt(row["EX_ID"]),
		ID12K:   cellInt(row["12K_ID"]),
		ID8K:    cellInt(row["8K_ID"]),
		ID6K:    cellInt(row["6K_ID"]),
		ID4K:    cellInt(row["4K_ID"]),
		EXSize:  cellText(row["EX_size"]),
		Size12K: cellText(row["12K_size"]),
		Size8K:  cellText(row["8K_size"]),
		Size6K:  cellText(row["6K_size"]),
		Size4K:  cellText(row["4K_size"]),
	}
	if variant.HasData() {
		normalized.Variant = variant
	}

	for _, tier := range models.Tiers {
		if amount := cellInt(row[tier+"_price"]); amount != nil {
			normalized.Prices = append(normalized.Prices, payments.TierPrice{
				Tier:   tier,
				Amount: *amount,
			})
		}
	}

	return normalized, nil
}

// cell returns the first present column among the given names. The catalog
// sheets historically spell some headers both ways (duration/dulation).
func cell(row Row, names ...string) interface{} {
	for _, name := range names {
		if v, ok := row[name]; ok {
			return v
		}
	}
	return nil
}

func cellString(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(value)
	case float64:
		if value == float64(int64(value)) {
			return strconv.FormatInt(int64(value), 10)
		}
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case bool:
		return strconv.FormatBool(value)
	default:
		return ""
	}
}

// cellText passes non-empty text through, else nil.
func cellText(v interface{}) *string {
	s := cellString(v)
	if s == "" {
		return nil
	}
	return &s
}

// cellInt parses an integer id; non-numeric or missing values become nil,
// never an error.
func cellInt(v interface{}) *int64 {
	if f, ok := v.(float64); ok {
		n := int64(f)
		return &n
	}
	s := cellString(v)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// cellBool matches the literal "true" case-insensitively, else false.
func cellBool(v interface{}) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return strings.EqualFold(cellString(v), "true")
}

var structuredReplacer = strings.NewReplacer("“", `"`, "”", `"`, `\"`, `"`)

// cellJSON decodes a structured cell. Objects pass through; text gets one
// layer of surrounding quotes and slash escaping stripped before decoding.
func cellJSON(v interface{}) (models.JSONMap, error) {
	switch value := v.(type) {
	case nil:
		return models.JSONMap{}, nil
	case map[string]interface{}:
		return models.JSONMap(value), nil
	case models.JSONMap:
		return value, nil
	case string:
		s := strings.TrimSpace(value)
		if s == "" {
			return models.JSONMap{}, nil
		}
		if len(s) >= 2 {
			if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
				s = strings.TrimSpace(s[1 : len(s)-1])
			}
		}
		s = structuredReplacer.Replace(s)
		m := models.JSONMap{}
		if err := json.Unmarshal([]byte(s), &m); err != nil {
			return nil, errors.WithStack(err)
		}
		return m, nil
	default:
		return nil, errors.Errorf("unsupported structured cell type %T", v)
	}
}
