package shared_test

import (
	"testing"

	"quadra/shared"
	"quadra/shared/dto"
)

func boolPtr(b bool) *bool {
	return &b
}

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{
			name:     "empty string returns nil",
			input:    "",
			expected: nil,
		},
		{
			name:     "valid true string",
			input:    "true",
			expected: boolPtr(true),
		},
		{
			name:     "valid false string",
			input:    "false",
			expected: boolPtr(false),
		},
		{
			name:     "valid 1 string",
			input:    "1",
			expected: boolPtr(true),
		},
		{
			name:     "valid 0 string",
			input:    "0",
			expected: boolPtr(false),
		},
		{
			name:     "invalid string returns nil",
			input:    "invalid",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.ConvertStringToBool(tt.input)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("expected nil, got %v", *result)
				}
			} else {
				if result == nil {
					t.Errorf("expected %v, got nil", *tt.expected)
				} else if *result != *tt.expected {
					t.Errorf("expected %v, got %v", *tt.expected, *result)
				}
			}
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{
			name:     "zero total returns 1",
			total:    0,
			limit:    10,
			expected: 1,
		},
		{
			name:     "zero limit returns 1",
			total:    100,
			limit:    0,
			expected: 1,
		},
		{
			name:     "negative limit returns 1",
			total:    100,
			limit:    -5,
			expected: 1,
		},
		{
			name:     "exact division",
			total:    100,
			limit:    10,
			expected: 10,
		},
		{
			name:     "rounds up partial page",
			total:    101,
			limit:    10,
			expected: 11,
		},
		{
			name:     "single page",
			total:    3,
			limit:    10,
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.CalculateTotalPage(tt.total, tt.limit)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestTransformFields(t *testing.T) {
	type payload struct {
		Name        string `db:"name"`
		Description string `db:"description"`
		Skipped     string
	}

	fields := shared.TransformFields(payload{Name: "Quadra de Futsal"}, "admin")

	if fields["name"] != "Quadra de Futsal" {
		t.Errorf("expected name to be set, got %v", fields["name"])
	}

	if _, ok := fields["description"]; ok {
		t.Error("zero-valued field must not be included")
	}

	if fields["modified_by"] != "admin" {
		t.Errorf("expected modified_by to be admin, got %v", fields["modified_by"])
	}

	if _, ok := fields["modified_at"]; !ok {
		t.Error("expected modified_at to be set")
	}
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("abc-123", "id", "courts")

	if len(group.Filters) != 1 {
		t.Fatalf("expected 1 filter, got %d", len(group.Filters))
	}

	filter, ok := group.Filters[0].(dto.Filter)
	if !ok {
		t.Fatal("expected a dto.Filter")
	}

	if filter.Field != "id" || filter.Value != "abc-123" || filter.Table != "courts" {
		t.Errorf("unexpected filter: %+v", filter)
	}
}

func TestBuildCacheKey(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		parts    []string
		expected string
	}{
		{
			name:     "prefix only",
			prefix:   "courts",
			parts:    nil,
			expected: "courts",
		},
		{
			name:     "prefix with id",
			prefix:   "courts",
			parts:    []string{"abc-123"},
			expected: "courts:abc-123",
		},
		{
			name:     "prefix with several parts",
			prefix:   "availability",
			parts:    []string{"abc-123", "10/05/2025"},
			expected: "availability:abc-123:10/05/2025",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.BuildCacheKey(tt.prefix, tt.parts...)
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 2, Limit: 10, SortBy: "created_at", SortDir: "DESC"}

	filterA := shared.FilterByID("abc", "id", "courts")
	filterB := shared.FilterByID("def", "id", "courts")

	keyA := shared.BuildCacheKeyWithQuery("courts", params, filterA)
	keyAgain := shared.BuildCacheKeyWithQuery("courts", params, filterA)
	keyB := shared.BuildCacheKeyWithQuery("courts", params, filterB)

	if keyA != keyAgain {
		t.Error("expected identical inputs to produce identical keys")
	}

	if keyA == keyB {
		t.Error("expected distinct filters to produce distinct keys")
	}
}
