package filter

import (
	"errors"
	"strings"
	"testing"

	"github.com/s0up4200/movieclient/movieapi"
)

func TestCompileFilter(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{
			name:       "valid expression",
			expression: `containsFold(Title, "heat")`,
			wantErr:    false,
		},
		{
			name:        "empty expression",
			expression:  "   ",
			wantErr:     true,
			errContains: "empty expression",
		},
		{
			name:       "invalid syntax",
			expression: `containsFold(Title, "unclosed`,
			wantErr:    true,
		},
		{
			name:       "unknown field",
			expression: `Rating > 5`,
			wantErr:    true,
		},
		{
			name:       "non boolean result",
			expression: `ReleaseYear + 1`,
			wantErr:    true,
		},
		{
			name:       "complex expression",
			expression: `ReleaseYear >= 1990 and ReleaseYear < 2000 and not prefixFold(Title, "the")`,
			wantErr:    false,
		},
	}

	compiler := NewExprCompiler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := compiler.Compile(tt.expression)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error but got none")
				}
				var compErr *CompilationError
				if !errors.As(err, &compErr) {
					t.Errorf("expected CompilationError, got %T", err)
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if filter.Expression() != strings.TrimSpace(tt.expression) {
				t.Errorf("expression = %q, want %q", filter.Expression(), tt.expression)
			}
		})
	}
}

func TestFilterEvaluation(t *testing.T) {
	movie := movieapi.Movie{
		ID:          7,
		Title:       "Heat",
		Description: "A Los Angeles crime saga",
		ReleaseYear: 1995,
	}

	tests := []struct {
		name       string
		expression string
		expected   bool
	}{
		{name: "title contains", expression: `containsFold(Title, "HEAT")`, expected: true},
		{name: "description ends with", expression: `suffixFold(Description, "SAGA")`, expected: true},
		{name: "title starts with", expression: `prefixFold(Title, "he")`, expected: true},
		{name: "infix contains operator", expression: `Description contains "crime"`, expected: true},
		{name: "infix startsWith operator", expression: `Title startsWith "He"`, expected: true},
		{name: "year comparison", expression: `ReleaseYear > 2000`, expected: false},
		{name: "id match", expression: `ID == 7`, expected: true},
		{name: "movie struct access", expression: `Movie.Title == "Heat"`, expected: true},
		{name: "age helper", expression: `age() >= 20`, expected: true},
		{name: "current year helper", expression: `ReleaseYear < currentYear()`, expected: true},
		{name: "lower builtin", expression: `lower(Title) == "heat"`, expected: true},
		{name: "complex expression", expression: `ReleaseYear in 1990..1999 and containsFold(Description, "CRIME")`, expected: true},
	}

	compiler := NewExprCompiler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := compiler.Compile(tt.expression)
			if err != nil {
				t.Fatalf("failed to compile filter: %v", err)
			}

			result, err := filter.Evaluate(movie)
			if err != nil {
				t.Fatalf("unexpected evaluation error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("expected %v but got %v for expression %q", tt.expected, result, tt.expression)
			}
		})
	}
}

func TestResolveHelperExpression(t *testing.T) {
	movies := []movieapi.Movie{
		{ID: 1, Title: "Heat", ReleaseYear: 1995},
		{ID: 2, Title: "The Heat", ReleaseYear: 2013},
		{ID: 3, Title: "Se7en", ReleaseYear: 1995},
	}

	f, err := NewManager().Resolve(`ReleaseYear >= 1990 and ReleaseYear < 2000 and containsFold(Title, "heat")`, "")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	got, err := Apply(f, movies)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("Apply() = %v, want only Heat", got)
	}
}

func TestEvaluationError(t *testing.T) {
	filter, err := NewExprCompiler().Compile(`[1, 2][ID] == 1`)
	if err != nil {
		t.Fatalf("failed to compile filter: %v", err)
	}

	_, err = filter.Evaluate(movieapi.Movie{ID: 5})
	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected EvaluationError, got %v", err)
	}
	if evalErr.MovieID != 5 {
		t.Errorf("MovieID = %d, want 5", evalErr.MovieID)
	}

	if _, err := Apply(filter, []movieapi.Movie{{ID: 0}, {ID: 9}}); err == nil {
		t.Errorf("expected Apply to surface the evaluation error")
	}
}

func TestCompilerCache(t *testing.T) {
	compiler := NewExprCompiler(WithCache(2))

	first, err := compiler.Compile(`ID > 1`)
	if err != nil {
		t.Fatal(err)
	}
	again, err := compiler.Compile(` ID > 1 `)
	if err != nil {
		t.Fatal(err)
	}
	if first != again {
		t.Errorf("expected cached filter to be reused")
	}

	compiler.Compile(`ID > 2`)
	compiler.Compile(`ID > 3`)
	if compiler.Size() != 2 {
		t.Errorf("cache size = %d, want 2", compiler.Size())
	}

	compiler.Clear()
	if compiler.Size() != 0 {
		t.Errorf("cache size after clear = %d, want 0", compiler.Size())
	}
}

func TestLRUCacheEviction(t *testing.T) {
	cache := newLRUCache[int](2)
	cache.Put("a", 1)
	cache.Put("b", 2)

	// Touch a so b becomes the oldest
	if v, ok := cache.Get("a"); !ok || v != 1 {
		t.Fatalf("Get(a) = %v, %v", v, ok)
	}
	cache.Put("c", 3)

	if _, ok := cache.Get("b"); ok {
		t.Errorf("expected b to be evicted")
	}
	if v, ok := cache.Get("c"); !ok || v != 3 {
		t.Errorf("Get(c) = %v, %v", v, ok)
	}
	if cache.Len() != 2 {
		t.Errorf("Len() = %d, want 2", cache.Len())
	}
}

func TestManager(t *testing.T) {
	movies := []movieapi.Movie{
		{ID: 1, Title: "Heat", ReleaseYear: 1995},
		{ID: 2, Title: "Inception", ReleaseYear: 2010},
		{ID: 3, Title: "Se7en", ReleaseYear: 1995},
	}

	m := NewManager()
	err := m.RegisterFilters(map[string]string{
		"nineties": `ReleaseYear >= 1990 and ReleaseYear < 2000`,
		"recent":   `ReleaseYear >= 2010`,
	})
	if err != nil {
		t.Fatalf("RegisterFilters() error = %v", err)
	}

	if got := m.ListFilters(); strings.Join(got, ",") != "nineties,recent" {
		t.Errorf("ListFilters() = %v", got)
	}

	t.Run("preset", func(t *testing.T) {
		f, err := m.Resolve("", "nineties")
		if err != nil {
			t.Fatal(err)
		}
		got, err := Apply(f, movies)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
			t.Errorf("Apply() = %v", got)
		}
	})

	t.Run("expression wins over preset", func(t *testing.T) {
		f, err := m.Resolve(`Title == "Inception"`, "nineties")
		if err != nil {
			t.Fatal(err)
		}
		got, err := Apply(f, movies)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0].ID != 2 {
			t.Errorf("Apply() = %v", got)
		}
	})

	t.Run("no filter matches all", func(t *testing.T) {
		f, err := m.Resolve("", "")
		if err != nil {
			t.Fatal(err)
		}
		got, err := Apply(f, movies)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != len(movies) {
			t.Errorf("Apply() returned %d movies, want %d", len(got), len(movies))
		}
	})

	t.Run("unknown preset", func(t *testing.T) {
		_, err := m.Resolve("", "missing")
		var notFound *PresetNotFoundError
		if !errors.As(err, &notFound) {
			t.Errorf("expected PresetNotFoundError, got %v", err)
		}
	})

	t.Run("invalid preset is rejected atomically", func(t *testing.T) {
		err := m.RegisterFilters(map[string]string{
			"bad":  `ReleaseYear >`,
			"good": `ID > 0`,
		})
		if err == nil {
			t.Fatal("expected error for invalid preset")
		}
		if _, ok := m.GetFilter("good"); ok {
			t.Errorf("expected no filters registered after failure")
		}
	})
}
