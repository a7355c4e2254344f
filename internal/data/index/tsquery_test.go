package index

import "testing"

func TestBuildOrQuery(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "question_with_stop_words",
			in:   "What is the difference between CNN and RNN?",
			want: "difference | between | cnn | rnn",
		},
		{
			name: "punctuation_split",
			in:   "self-attention!",
			want: "self | attention",
		},
		{
			name: "duplicates_removed",
			in:   "sorting sorting Sorting algorithms",
			want: "sorting | algorithms",
		},
		{
			name: "all_stop_words",
			in:   "what is the",
			want: "",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
		{
			name: "digits_kept",
			in:   "resnet50 layers",
			want: "resnet50 | layers",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BuildOrQuery(tc.in); got != tc.want {
				t.Fatalf("BuildOrQuery(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
