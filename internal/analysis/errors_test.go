package analysis

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{
			name: "http 429",
			err:  errors.New("rpc error: code 429 resource exhausted"),
			want: KindRateLimited,
		},
		{
			name: "quota exhausted",
			err:  errors.New("generate content: quota exceeded for project"),
			want: KindQuotaExceeded,
		},
		{
			name: "safety filter",
			err:  errors.New("blocked: SAFETY threshold exceeded"),
			want: KindSafetyRejected,
		},
		{
			name: "network failure",
			err:  errors.New("dial tcp: network is unreachable"),
			want: KindNetworkFailure,
		},
		{
			name: "fetch failure",
			err:  errors.New("failed to fetch"),
			want: KindNetworkFailure,
		},
		{
			name: "safety wins over 429",
			err:  errors.New("429 request rejected by safety filter"),
			want: KindSafetyRejected,
		},
		{
			name: "429 wins over quota",
			err:  errors.New("429: quota exceeded"),
			want: KindRateLimited,
		},
		{
			name: "anything else",
			err:  errors.New("unexpected end of JSON input"),
			want: KindUnclassified,
		},
		{
			name: "typed gateway error keeps its kind",
			err:  newError(KindImageBlurry, nil),
			want: KindImageBlurry,
		},
		{
			name: "wrapped gateway error keeps its kind",
			err:  newError(KindNotALabel, errors.New("quota")),
			want: KindNotALabel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "classified error carries its message",
			err:  newError(KindEmptyResponse, nil),
			want: KindEmptyResponse.Message(),
		},
		{
			name: "raw service error is classified",
			err:  errors.New("server returned 429"),
			want: KindRateLimited.Message(),
		},
		{
			name: "unknown error falls back to the generic message",
			err:  errors.New("panic elsewhere"),
			want: KindUnclassified.Message(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKindMessagesAreDistinct(t *testing.T) {
	kinds := []Kind{
		KindUnclassified, KindEmptyResponse, KindImageBlurry, KindNotALabel,
		KindSafetyRejected, KindRateLimited, KindQuotaExceeded, KindNetworkFailure,
	}
	seen := map[string]Kind{}
	for _, k := range kinds {
		msg := k.Message()
		if msg == "" {
			t.Errorf("kind %v has an empty message", k)
		}
		if prev, dup := seen[msg]; dup {
			t.Errorf("kinds %v and %v share the message %q", prev, k, msg)
		}
		seen[msg] = k
	}
}
