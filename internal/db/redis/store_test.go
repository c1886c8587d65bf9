package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/rueidis"
	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/sukhanhub/sukhan/internal/db"
)

// --- client.go tests ---

func TestPing_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.Result(mock.RedisString("PONG")))

	s := NewStoreForTest(c)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPing_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	if err := s.Ping(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestContainsIgnoreCase(t *testing.T) {
	tests := []struct {
		s, sub string
		want   bool
	}{
		{"Index Already Exists", "index already exists", true},
		{"UNKNOWN INDEX NAME", "unknown index name", true},
		{"unknown command 'FT._LIST'", "unknown command", true},
		{"hello world", "world", true},
		{"short", "longer than input", false},
		{"exact", "exact", true},
		{"", "", true},
		{"notempty", "", true},
	}
	for _, tc := range tests {
		got := containsIgnoreCase(tc.s, tc.sub)
		if got != tc.want {
			t.Errorf("containsIgnoreCase(%q, %q) = %v, want %v", tc.s, tc.sub, got, tc.want)
		}
	}
}

// --- hash.go tests ---

func TestHSet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "HSET" && cmd[1] == "sukhan:poems:1"
		})).
		Return(mock.Result(mock.RedisInt64(1)))

	s := NewStoreForTest(c)
	err := s.HSet(context.Background(), "sukhan:poems:1", map[string]string{"title_en": "Khizr-e-Rah"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHGetAll_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("HGETALL", "sukhan:poems:1")).
		Return(mock.Result(mock.RedisMap(map[string]rueidis.RedisMessage{
			"title_en": mock.RedisString("Khizr-e-Rah"),
			"book_id":  mock.RedisString("3"),
		})))

	s := NewStoreForTest(c)
	m, err := s.HGetAll(context.Background(), "sukhan:poems:1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m["title_en"] != "Khizr-e-Rah" {
		t.Errorf("unexpected fields: %v", m)
	}
}

func TestHGetAllMulti_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	s := NewStoreForTest(c)
	out, err := s.HGetAllMulti(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != nil {
		t.Errorf("expected nil, got %v", out)
	}
}

func TestScan_MultiPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	first := c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "SCAN" && cmd[1] == "0"
		})).
		Return(mock.Result(mock.RedisArray(
			mock.RedisString("42"),
			mock.RedisArray(mock.RedisString("sukhan:poems:1")),
		)))

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "SCAN" && cmd[1] == "42"
		})).
		Return(mock.Result(mock.RedisArray(
			mock.RedisString("0"),
			mock.RedisArray(mock.RedisString("sukhan:poems:2")),
		))).
		After(first)

	s := NewStoreForTest(c)
	keys, err := s.Scan(context.Background(), "sukhan:poems:*")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %v", keys)
	}
}

// --- index.go tests ---

func TestCreateIndex_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "FT.CREATE" && cmd[1] == "sukhan:poems:idx"
		})).
		Return(mock.Result(mock.RedisString("OK")))

	s := NewStoreForTest(c)
	idx := &db.IndexDefinition{
		Name:     "sukhan:poems:idx",
		Prefixes: []string{"sukhan:poems:"},
		Fields: []db.IndexField{
			{Name: "title_en", Type: db.IndexFieldText},
			{Name: "book_id", Type: db.IndexFieldTag},
		},
	}
	if err := s.CreateIndex(context.Background(), idx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateIndex_AlreadyExists(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "FT.CREATE"
		})).
		Return(mock.Result(mock.RedisError("Index already exists")))

	s := NewStoreForTest(c)
	idx := &db.IndexDefinition{
		Name:   "sukhan:poems:idx",
		Fields: []db.IndexField{{Name: "title_en", Type: db.IndexFieldText}},
	}
	err := s.CreateIndex(context.Background(), idx)
	if !errors.Is(err, db.ErrIndexExists) {
		t.Errorf("expected ErrIndexExists, got %v", err)
	}
}

func TestSupportsTextSearch_True(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT._LIST")).
		Return(mock.Result(mock.RedisArray()))

	s := NewStoreForTest(c)
	if !s.SupportsTextSearch(context.Background()) {
		t.Error("expected text search support")
	}
	// Second call must not probe again (expectation above allows one call).
	if !s.SupportsTextSearch(context.Background()) {
		t.Error("expected cached capability")
	}
}

func TestSupportsTextSearch_MissingModule(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT._LIST")).
		Return(mock.Result(mock.RedisError("ERR unknown command 'FT._LIST'")))

	s := NewStoreForTest(c)
	if s.SupportsTextSearch(context.Background()) {
		t.Error("expected no text search support")
	}
}

// --- search.go tests ---

func TestSearchText_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "FT.SEARCH" && cmd[1] == "sukhan:poems:idx"
		})).
		Return(mock.Result(mock.RedisArray(
			mock.RedisInt64(1),
			mock.RedisString("sukhan:poems:1"),
			mock.RedisString("0.85"),
			mock.RedisArray(
				mock.RedisString("title_en"),
				mock.RedisString("Khizr-e-Rah"),
			),
		)))

	s := NewStoreForTest(c)
	result, err := s.SearchText(context.Background(), &db.TextQuery{
		IndexName: "sukhan:poems:idx",
		Query:     "khizr",
		Limit:     10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 1 {
		t.Fatalf("expected total 1, got %d", result.Total)
	}
	if result.Entries[0].Fields["title_en"] != "Khizr-e-Rah" {
		t.Errorf("unexpected entry: %+v", result.Entries[0])
	}
	if result.Entries[0].Score < 0.84 || result.Entries[0].Score > 0.86 {
		t.Errorf("expected score ~0.85, got %f", result.Entries[0].Score)
	}
}

func TestSearchText_Validation(t *testing.T) {
	s := NewStoreForTest(mock.NewClient(gomock.NewController(t)))
	ctx := context.Background()

	if _, err := s.SearchText(ctx, &db.TextQuery{Query: "q", Limit: 10}); err == nil {
		t.Error("expected error for missing index name")
	}
	if _, err := s.SearchText(ctx, &db.TextQuery{IndexName: "idx", Limit: 10}); err == nil {
		t.Error("expected error for missing query")
	}
	if _, err := s.SearchText(ctx, &db.TextQuery{IndexName: "idx", Query: "q"}); err == nil {
		t.Error("expected error for non-positive limit")
	}
}

func TestSearchText_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "FT.SEARCH"
		})).
		Return(mock.Result(mock.RedisArray(mock.RedisInt64(0))))

	s := NewStoreForTest(c)
	result, err := s.SearchText(context.Background(), &db.TextQuery{
		IndexName: "idx", Query: "nothing", Limit: 5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 0 || len(result.Entries) != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
}

func TestBuildTextQuery(t *testing.T) {
	tests := []struct {
		name string
		q    db.TextQuery
		want string
	}{
		{
			name: "plain",
			q:    db.TextQuery{Query: "khizr"},
			want: "(khizr)",
		},
		{
			name: "field scoped",
			q:    db.TextQuery{Query: "khizr", Fields: []string{"title_en", "title_ro"}},
			want: "@title_en|title_ro:(khizr)",
		},
		{
			name: "tag filter",
			q:    db.TextQuery{Query: "khizr", TagFilters: map[string]string{"book_id": "3"}},
			want: "@book_id:{3} (khizr)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildTextQuery(&tt.q); got != tt.want {
				t.Errorf("buildTextQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}
