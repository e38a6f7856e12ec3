package search

import (
	"reflect"
	"testing"
)

func TestSplitSentences(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{name: "mixed punctuation", text: "Hello world. How are you? Fine!", want: []string{"Hello world.", "How are you?", "Fine!"}},
		{name: "no whitespace after period", text: "Version 1.5 shipped. Done.", want: []string{"Version 1.5 shipped.", "Done."}},
		{name: "whitespace run dropped", text: "One.\n\n  Two!\tThree", want: []string{"One.", "Two!", "Three"}},
		{name: "repeated punctuation", text: "Really?! Yes.", want: []string{"Really?!", "Yes."}},
		{name: "trailing whitespace", text: "End. ", want: []string{"End."}},
		{name: "no boundary", text: "just words", want: []string{"just words"}},
		{name: "empty", text: "", want: nil},
		{name: "multibyte", text: "안녕하세요. 반갑습니다!", want: []string{"안녕하세요.", "반갑습니다!"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitSentences(tc.text)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("SplitSentences(%q) = %#v, want %#v", tc.text, got, tc.want)
			}
		})
	}
}

func TestSentencesIsRestartable(t *testing.T) {
	seq := Sentences("A. B. C.")
	first := 0
	for range seq {
		first++
	}
	second := 0
	for range seq {
		second++
	}
	if first != 3 || second != 3 {
		t.Fatalf("expected 3 sentences on both passes, got %d and %d", first, second)
	}
}

func TestSentencesStopsEarly(t *testing.T) {
	var got []string
	for sentence := range Sentences("A. B. C.") {
		got = append(got, sentence)
		if len(got) == 2 {
			break
		}
	}
	if !reflect.DeepEqual(got, []string{"A.", "B."}) {
		t.Fatalf("unexpected early-stop result: %#v", got)
	}
}
