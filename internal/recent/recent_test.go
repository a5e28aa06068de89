package recent

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/qastetray/cli/internal/settings"
)

func urls(l *List) []string {
	var out []string
	for _, e := range l.All() {
		out = append(out, e.URL)
	}
	return out
}

func TestList_AddMostRecentFirst(t *testing.T) {
	l := New(-1)
	l.Add("a", "")
	l.Add("b", "B")
	assert.Equal(t, []Entry{{URL: "b", Title: "B"}, {URL: "a", Title: "a"}}, l.Entries())
}

func TestList_MaxLen(t *testing.T) {
	l := New(1)
	l.Add("a", "")
	l.Add("b", "")
	assert.Equal(t, []string{"b"}, urls(l))

	l.SetMaxLen(-1)
	l.Add("c", "")
	l.Add("d", "")
	assert.Equal(t, []string{"d", "c", "b"}, urls(l))

	l.SetMaxLen(2)
	assert.Equal(t, []string{"d", "c"}, urls(l))

	l.SetMaxLen(0)
	l.Add("e", "")
	assert.Equal(t, 0, l.Len())
}

func TestList_At(t *testing.T) {
	l := New(-1)
	for _, u := range []string{"a", "b", "c"} {
		l.Add(u, "")
	}

	tests := []struct {
		index   int
		want    string
		wantErr bool
	}{
		{index: 0, want: "c"},
		{index: 2, want: "a"},
		{index: -1, want: "a"},
		{index: -3, want: "c"},
		{index: 3, wantErr: true},
		{index: -4, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.index), func(t *testing.T) {
			e, err := l.At(tt.index)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrIndexOutOfRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.URL)
		})
	}
}

func TestList_SliceIsUnsupported(t *testing.T) {
	l := New(-1)
	l.Add("a", "")
	_, err := l.Slice(0, 1)
	assert.ErrorIs(t, err, ErrUnsupportedOperation)
}

func TestList_AllStopsEarly(t *testing.T) {
	l := New(-1)
	l.Add("a", "")
	l.Add("b", "")
	var seen int
	for range l.All() {
		seen++
		break
	}
	assert.Equal(t, 1, seen)
}

func TestList_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		maxlen := rapid.IntRange(-1, 8).Draw(t, "maxlen")
		added := rapid.SliceOf(rapid.StringMatching(`[a-z]{1,5}`)).Draw(t, "urls")

		l := New(maxlen)
		for _, u := range added {
			l.Add(u, "")
		}

		want := len(added)
		if maxlen >= 0 && want > maxlen {
			want = maxlen
		}
		if l.Len() != want {
			t.Fatalf("len = %d, want %d", l.Len(), want)
		}
		for i := 0; i < l.Len(); i++ {
			e, err := l.At(i)
			if err != nil {
				t.Fatal(err)
			}
			if e.URL != added[len(added)-1-i] {
				t.Fatalf("entry %d = %q, want %q", i, e.URL, added[len(added)-1-i])
			}
		}
	})
}

func newSettings(t *testing.T) *settings.Store {
	t.Helper()
	s := settings.NewStore([]byte("[RecentPastes]\nmaxlen = 3\njson = []\n"), "")
	require.NoError(t, s.Load())
	return s
}

func TestLoadSave_RoundTrip(t *testing.T) {
	s := newSettings(t)
	l := New(3)
	l.Add("https://a", "first")
	l.Add("https://b", "")
	require.NoError(t, Save(l, s))

	raw, err := s.Get("RecentPastes", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `[["https://b","https://b"],["https://a","first"]]`, raw)

	loaded := New(-1)
	require.NoError(t, Load(loaded, s))
	assert.Equal(t, l.Entries(), loaded.Entries())
	assert.Equal(t, 3, loaded.MaxLen())
}

func TestLoad_Properties(t *testing.T) {
	s := newSettings(t)
	rapid.Check(t, func(t *rapid.T) {
		l := New(rapid.IntRange(-1, 6).Draw(t, "maxlen"))
		for _, u := range rapid.SliceOf(rapid.StringMatching(`https://[a-z]{1,4}`)).Draw(t, "urls") {
			l.Add(u, rapid.SampledFrom([]string{"", "title"}).Draw(t, "title"))
		}
		if err := Save(l, s); err != nil {
			t.Fatal(err)
		}
		loaded := New(0)
		if err := Load(loaded, s); err != nil {
			t.Fatal(err)
		}
		if fmt.Sprint(loaded.Entries()) != fmt.Sprint(l.Entries()) {
			t.Fatalf("loaded %v, saved %v", loaded.Entries(), l.Entries())
		}
	})
}

func TestLoad_ShortPairsAndBadJSON(t *testing.T) {
	s := newSettings(t)
	s.Set("RecentPastes", "json", `[["https://a"]]`)
	l := New(-1)
	require.NoError(t, Load(l, s))
	e, err := l.At(0)
	require.NoError(t, err)
	assert.Equal(t, Entry{URL: "https://a", Title: "https://a"}, e)

	s.Set("RecentPastes", "json", `{`)
	assert.Error(t, Load(l, s))
	assert.Zero(t, l.Len())
	assert.Equal(t, 3, l.MaxLen())
}

func TestBindMaxLen(t *testing.T) {
	s := newSettings(t)
	l := New(-1)
	for _, u := range []string{"a", "b", "c", "d"} {
		l.Add(u, "")
	}
	BindMaxLen(l, s)

	s.Set("RecentPastes", "maxlen", "2")
	assert.Equal(t, []string{"d", "c"}, urls(l))

	s.Set("RecentPastes", "maxlen", "garbage")
	assert.Equal(t, 2, l.MaxLen())
}
