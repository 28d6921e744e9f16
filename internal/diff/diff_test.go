package diff

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nahidhasan98/script-drift/internal/document"
)

func TestCompute_Scenarios(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want []Line
	}{
		{
			name: "modified last line",
			a:    []string{"SELECT 1;", "FROM foo;"},
			b:    []string{"SELECT 1;", "FROM bar;"},
			want: []Line{
				{Unchanged, "SELECT 1;"},
				{Removed, "FROM foo;"},
				{Added, "FROM bar;"},
			},
		},
		{
			name: "empty baseline",
			a:    []string{},
			b:    []string{"X;"},
			want: []Line{{Added, "X;"}},
		},
		{
			name: "empty current",
			a:    []string{"X;", "Y;"},
			b:    nil,
			want: []Line{{Removed, "X;"}, {Removed, "Y;"}},
		},
		{
			name: "both empty",
			a:    nil,
			b:    nil,
			want: []Line{},
		},
		{
			name: "trailing whitespace is a change",
			a:    []string{"a", "b "},
			b:    []string{"a", "b"},
			want: []Line{{Unchanged, "a"}, {Removed, "b "}, {Added, "b"}},
		},
		{
			name: "insertion in the middle",
			a:    []string{"a", "c"},
			b:    []string{"a", "b", "c"},
			want: []Line{{Unchanged, "a"}, {Added, "b"}, {Unchanged, "c"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.a, tt.b)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Compute() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompute_Identity(t *testing.T) {
	doc := []string{"SELECT *", "FROM person p", "JOIN visit v", "  ON p.id = v.person_id", "WHERE 1 = 1;"}
	got := Compute(doc, doc)
	require.Len(t, got, len(doc))
	for i, l := range got {
		assert.Equal(t, Unchanged, l.Tag)
		assert.Equal(t, doc[i], l.Content)
	}
}

func TestCompute_IsLongestCommonSubsequence(t *testing.T) {
	a := []string{"a", "b", "c", "a", "b", "b", "a"}
	b := []string{"c", "b", "a", "b", "a", "c"}

	unchanged := 0
	for _, l := range Compute(a, b) {
		if l.Tag == Unchanged {
			unchanged++
		}
	}
	assert.Equal(t, 4, unchanged)
}

func TestCompute_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	vocab := []string{"SELECT", "FROM foo", "FROM bar", "WHERE x = 1", "", "JOIN y", ";"}

	randomDoc := func() []string {
		n := rng.Intn(12)
		out := make([]string, n)
		for i := range out {
			out[i] = vocab[rng.Intn(len(vocab))]
		}
		return out
	}

	for iter := 0; iter < 300; iter++ {
		a, b := randomDoc(), randomDoc()
		name := fmt.Sprintf("case-%d", iter)

		forward := Compute(a, b)
		backward := Compute(b, a)

		// reconstruction
		rebuilt, err := Apply(a, forward)
		require.NoError(t, err, name)
		assert.Equal(t, append([]string{}, b...), rebuilt, name)

		// determinism
		assert.Equal(t, forward, Compute(a, b), name)

		// asymmetry
		assert.Equal(t, contents(forward, Added), contents(backward, Removed), name)
		assert.Equal(t, contents(forward, Removed), contents(backward, Added), name)

		// hints never break reconstruction
		hinted := Compute(a, b, WithHints())
		rebuilt, err = Apply(a, hinted)
		require.NoError(t, err, name)
		assert.Equal(t, append([]string{}, b...), rebuilt, name)
	}
}

func TestCompute_Hints(t *testing.T) {
	a := []string{"SELECT 1;", "WHERE x = 1;"}
	b := []string{"SELECT 1;", "WHERE x = 2;"}

	got := Compute(a, b, WithHints())
	want := []Line{
		{Unchanged, "SELECT 1;"},
		{Removed, "WHERE x = 1;"},
		{Hint, "          ^"},
		{Added, "WHERE x = 2;"},
		{Hint, "          ^"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Compute() mismatch (-want +got):\n%s", diff)
	}

	// dissimilar lines are not paired
	got = Compute([]string{"FROM foo;"}, []string{"totally different"}, WithHints())
	assert.Equal(t, []Line{{Removed, "FROM foo;"}, {Added, "totally different"}}, got)
}

func TestCompute_HintCutoff(t *testing.T) {
	a := []string{"WHERE x = 1;"}
	b := []string{"WHERE x = 2;"}

	assert.Equal(t, []Line{{Removed, a[0]}, {Added, b[0]}}, Compute(a, b, WithHintCutoff(0.99)))
	assert.Len(t, Compute(a, b, WithHintCutoff(0.5)), 4)
}

func TestCompute_LargeDocumentsWithSmallChange(t *testing.T) {
	const n = 100_000
	a := make([]string, n)
	for i := range a {
		a[i] = fmt.Sprintf("SELECT %d;", i)
	}
	b := append([]string{}, a...)
	b[n/2] = "SELECT changed;"

	got := Compute(a, b)
	require.Len(t, got, n+1)
	assert.Equal(t, []string{"SELECT changed;"}, contents(got, Added))
	assert.Equal(t, []string{fmt.Sprintf("SELECT %d;", n/2)}, contents(got, Removed))
	assert.Equal(t, Line{Unchanged, "SELECT 0;"}, got[0])
	assert.Equal(t, Line{Unchanged, fmt.Sprintf("SELECT %d;", n-1)}, got[n])
}

func TestCompute_HintInsertionMarksOneSide(t *testing.T) {
	got := Compute([]string{"FROM person"}, []string{"FROM person p"}, WithHints())
	assert.Equal(t, []Line{
		{Removed, "FROM person"},
		{Added, "FROM person p"},
		{Hint, "           ++"},
	}, got)
}

func TestLines_Documents(t *testing.T) {
	got := Lines(document.New("base", "X;\n"), document.New("live", "X;\nY;\n"))
	assert.Equal(t, []Line{{Unchanged, "X;"}, {Added, "Y;"}}, got)

	assert.Equal(t, []Line{{Added, "X;"}}, Lines(nil, document.New("live", "X;")))
}

func TestRenderAndPreview(t *testing.T) {
	lines := []Line{{Unchanged, "a"}, {Removed, "b"}, {Added, "c"}, {Hint, "^"}}
	assert.Equal(t, []string{"  a", "- b", "+ c", "? ^"}, Render(lines))
	assert.Equal(t, "  a\n- b\n+ c\n? ^", Text(lines))
	assert.Equal(t, "  a\n- b...", Preview(lines, 2))
}

func TestApply_RejectsMismatch(t *testing.T) {
	_, err := Apply([]string{"a"}, []Line{{Removed, "b"}})
	assert.Error(t, err)

	_, err = Apply([]string{"a", "b"}, []Line{{Unchanged, "a"}})
	assert.Error(t, err)

	_, err = Apply(nil, []Line{{Unchanged, "a"}})
	assert.Error(t, err)
}

func TestTag_JSON(t *testing.T) {
	data, err := json.Marshal(Line{Tag: Removed, Content: "x"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"tag":"removed","content":"x"}`, string(data))

	var l Line
	require.NoError(t, json.Unmarshal([]byte(`{"tag":"hint","content":"^"}`), &l))
	assert.Equal(t, Line{Tag: Hint, Content: "^"}, l)

	assert.Error(t, json.Unmarshal([]byte(`{"tag":"bogus"}`), &l))
}

func contents(lines []Line, tag Tag) []string {
	out := []string{}
	for _, l := range lines {
		if l.Tag == tag {
			out = append(out, l.Content)
		}
	}
	return out
}
