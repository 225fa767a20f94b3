package filter

import (
	"errors"
	"strings"
	"testing"

	"github.com/s0up4200/goodreads/goodreads"
)

func testBook() goodreads.Book {
	return goodreads.Book{
		ID:               "234225",
		Title:            "Dune",
		ISBN:             "0441172717",
		PublicationYear:  1990,
		PublicationMonth: 9,
		PublicationDay:   1,
		NumPages:         535,
		AverageRating:    4.22,
		RatingsCount:     553718,
		Publisher:        "Ace Books",
		LanguageCode:     "eng",
		Description:      "Set on the desert planet <b>Arrakis</b>.",
		Authors:          []goodreads.Author{{ID: "58", Name: "Frank Herbert"}},
		PopularShelves: []goodreads.Shelf{
			{Name: "to-read", Count: 381277},
			{Name: "science-fiction", Count: 21645},
		},
	}
}

func TestCompileFilter(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{
			name:       "valid expression",
			expression: `hasAuthor("Frank Herbert")`,
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
			expression: `hasAuthor("unclosed`,
			wantErr:    true,
		},
		{
			name:        "not a boolean",
			expression:  `1 + 2`,
			wantErr:     true,
			errContains: "failed to compile expression",
		},
		{
			name:       "complex expression",
			expression: `onShelf("science-fiction") and Year > 1980 and Rating >= 4.0`,
			wantErr:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := CompileFilter(tt.expression)

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error but got none")
					return
				}
				var compErr *CompilationError
				if !errors.As(err, &compErr) {
					t.Errorf("expected *CompilationError, got %T", err)
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
				}
				return
			}

			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if filter == nil {
				t.Errorf("expected filter but got nil")
			}
		})
	}
}

func TestBookFilterEvaluation(t *testing.T) {
	book := testBook()

	tests := []struct {
		name       string
		expression string
		expected   bool
	}{
		{"has author", `hasAuthor("frank herbert")`, true},
		{"does not have author", `hasAuthor("Ursula K. Le Guin")`, false},
		{"on shelf", `onShelf("Science-Fiction")`, true},
		{"year comparison", `Year > 1980`, true},
		{"rating check", `Rating >= 4.2 and RatingsCount > 1000`, true},
		{"page count", `Pages < 300`, false},
		{"plain description", `contains(Description, "arrakis") and not contains(Description, "<b>")`, true},
		{"publication date", `Published < parseDate("2000-01-01")`, true},
		{"author list", `len(Authors) == 1 and "Frank Herbert" in Authors`, true},
		{"ebook flag", `IsEbook`, false},
		{"title helper", `startsWith(Title, "du") and lower(Publisher) == "ace books"`, true},
		{"entity access", `Book.ISBN == "0441172717"`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := CompileFilter(tt.expression)
			if err != nil {
				t.Fatalf("failed to compile filter: %v", err)
			}

			result, err := filter.Match(BookEnv(&book))
			if err != nil {
				t.Fatalf("evaluation failed: %v", err)
			}
			if result != tt.expected {
				t.Errorf("expected %v but got %v for expression %q", tt.expected, result, tt.expression)
			}
		})
	}
}

func TestCommentFilterEvaluation(t *testing.T) {
	comment := goodreads.Comment{
		ID:        "502",
		Body:      "The appendices are the best part.",
		User:      goodreads.User{ID: "1002", Name: "Sam Pages", UserName: "spages"},
		CreatedAt: "Wed Jan 09 08:00:00 -0800 2013",
	}

	tests := []struct {
		name       string
		expression string
		expected   bool
	}{
		{"by user name", `byUser("sam pages")`, true},
		{"by user id", `byUser("1002")`, true},
		{"by other user", `byUser("ereader")`, false},
		{"body", `contains(Body, "APPENDICES")`, true},
		{"created after", `Created > parseDate("2013-01-01")`, true},
		{"display name", `User == "Sam Pages" and UserID == "1002"`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := CompileFilter(tt.expression)
			if err != nil {
				t.Fatalf("failed to compile filter: %v", err)
			}

			result, err := filter.Match(CommentEnv(&comment))
			if err != nil {
				t.Fatalf("evaluation failed: %v", err)
			}
			if result != tt.expected {
				t.Errorf("expected %v but got %v for expression %q", tt.expected, result, tt.expression)
			}
		})
	}
}

func TestBooksKeepsOrder(t *testing.T) {
	books := []goodreads.Book{
		{ID: "1", Title: "Dune", NumPages: 535},
		{ID: "2", Title: "Dune Messiah", NumPages: 256},
		{ID: "3", Title: "Children of Dune", NumPages: 444},
	}

	filter, err := CompileFilter(`Pages > 400`)
	if err != nil {
		t.Fatalf("failed to compile filter: %v", err)
	}

	matches, err := Books(filter, books)
	if err != nil {
		t.Fatalf("evaluation failed: %v", err)
	}
	if len(matches) != 2 || matches[0].ID != "1" || matches[1].ID != "3" {
		t.Errorf("unexpected matches: %+v", matches)
	}

	none, err := Books(filter, nil)
	if err != nil || none == nil || len(none) != 0 {
		t.Errorf("expected empty non-nil result, got %v, %v", none, err)
	}
}

func TestComments(t *testing.T) {
	comments := []goodreads.Comment{
		{ID: "501", Body: "Great review", User: goodreads.User{ID: "1001"}},
		{ID: "502", Body: "The appendices", User: goodreads.User{ID: "1002"}},
	}

	filter, err := CompileFilter(`byUser("1002")`)
	if err != nil {
		t.Fatalf("failed to compile filter: %v", err)
	}

	matches, err := Comments(filter, comments)
	if err != nil {
		t.Fatalf("evaluation failed: %v", err)
	}
	if len(matches) != 1 || matches[0].ID != "502" {
		t.Errorf("unexpected matches: %+v", matches)
	}
}

func TestEvaluationError(t *testing.T) {
	filter, err := CompileFilter(`Title > 3`)
	if err != nil {
		t.Fatalf("failed to compile filter: %v", err)
	}

	_, err = Books(filter, []goodreads.Book{{Title: "Dune"}})
	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected *EvaluationError, got %v", err)
	}
	if evalErr.Subject != "Dune" || evalErr.Expression != "Title > 3" {
		t.Errorf("unexpected error fields: %+v", evalErr)
	}
}

func TestCompilerCache(t *testing.T) {
	compiler := NewExprCompiler(WithCache(2))

	first, err := compiler.Compile(`Year > 1990`)
	if err != nil {
		t.Fatalf("failed to compile filter: %v", err)
	}
	again, _ := compiler.Compile(`  Year > 1990 `)
	if first != again {
		t.Errorf("expected cached filter to be reused")
	}

	_, _ = compiler.Compile(`Year > 2000`)
	_, _ = compiler.Compile(`Year > 2010`)
	if got := compiler.Size(); got != 2 {
		t.Errorf("expected cache size 2, got %d", got)
	}

	compiler.Clear()
	if got := compiler.Size(); got != 0 {
		t.Errorf("expected empty cache, got %d", got)
	}

	uncached := NewExprCompiler()
	_, _ = uncached.Compile(`Year > 1990`)
	if got := uncached.Size(); got != 0 {
		t.Errorf("expected no cache, got size %d", got)
	}
}

func TestLRUCacheEviction(t *testing.T) {
	cache := newLRUCache[int](2)
	cache.Put("a", 1)
	cache.Put("b", 2)
	cache.Get("a")
	cache.Put("c", 3)

	if _, ok := cache.Get("b"); ok {
		t.Errorf("expected least recently used entry to be evicted")
	}
	if v, ok := cache.Get("a"); !ok || v != 1 {
		t.Errorf("expected a=1, got %v, %v", v, ok)
	}

	cache.Put("a", 10)
	if v, _ := cache.Get("a"); v != 10 {
		t.Errorf("expected updated value 10, got %v", v)
	}
}

func TestFilterManager(t *testing.T) {
	manager := NewManager(WithCompiler(NewExprCompiler()))

	err := manager.RegisterFilters(map[string]string{
		"long":   `Pages > 500`,
		"broken": `Pages >`,
	})
	if err == nil {
		t.Fatalf("expected error for broken filter")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("error %q does not name the broken filter", err)
	}
	if len(manager.ListFilters()) != 0 {
		t.Errorf("expected no filters after failed registration")
	}

	if err := manager.RegisterFilters(map[string]string{
		"long":    `Pages > 500`,
		"classic": `Year < 1970`,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := manager.ListFilters(); strings.Join(got, ",") != "classic,long" {
		t.Errorf("unexpected filter names: %v", got)
	}

	byName, err := manager.Resolve("long")
	if err != nil || byName.Expression() != `Pages > 500` {
		t.Errorf("expected preset, got %v, %v", byName, err)
	}

	forced, err := manager.Resolve("@classic")
	if err != nil || forced.Expression() != `Year < 1970` {
		t.Errorf("expected preset, got %v, %v", forced, err)
	}

	_, err = manager.Resolve("@missing")
	var unknown *UnknownPresetError
	if !errors.As(err, &unknown) || unknown.Name != "missing" {
		t.Errorf("expected UnknownPresetError, got %v", err)
	}

	inline, err := manager.Resolve(`Rating > 4`)
	if err != nil || inline.Expression() != `Rating > 4` {
		t.Errorf("expected inline filter, got %v, %v", inline, err)
	}

	if err := manager.RegisterFilter("bad", ""); err == nil {
		t.Errorf("expected error for empty expression")
	}
}

func TestCustomFunctions(t *testing.T) {
	compiler := NewExprCompiler(WithCustomFunctions(map[string]any{
		"inSeries": func(title string) bool { return strings.Contains(title, "#") },
	}))

	filter, err := compiler.Compile(`inSeries(Title)`)
	if err != nil {
		t.Fatalf("failed to compile filter: %v", err)
	}

	book := testBook()
	if match, err := filter.Match(BookEnv(&book)); err != nil || match {
		t.Errorf("expected no match for %q, got %v, %v", book.Title, match, err)
	}

	book.Title = "Dune (Dune Chronicles, #1)"
	if match, err := filter.Match(BookEnv(&book)); err != nil || !match {
		t.Errorf("expected match for %q, got %v, %v", book.Title, match, err)
	}
}

func TestEntityHelpers(t *testing.T) {
	filter, err := CompileFilter(`byUser("1002")`)
	if err != nil {
		t.Fatalf("failed to compile filter: %v", err)
	}

	book := testBook()
	_, err = filter.Match(BookEnv(&book))
	var unavailable *UnavailableHelperError
	if !errors.As(err, &unavailable) || unavailable.Name != "byUser" {
		t.Errorf("expected UnavailableHelperError for byUser, got %v", err)
	}

	_, err = Books(filter, []goodreads.Book{book})
	if !errors.As(err, &unavailable) {
		t.Errorf("expected Books to wrap UnavailableHelperError, got %v", err)
	}

	_, err = CompileFilter(`hasAuthor("Frank Herbert") or byUser("1002")`)
	var compErr *CompilationError
	if !errors.As(err, &compErr) || !strings.Contains(err.Error(), "cannot be combined") {
		t.Errorf("expected mixed helpers to be rejected, got %v", err)
	}
}
