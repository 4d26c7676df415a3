package imageurl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		raw  string
		want Verdict
	}{
		{"https://res.cloudinary.com/demo/image/upload/pic.png", Valid},
		{"http://cdn.example.com/a.jpg", Valid},
		{"./local/pic.png", RelativePath},
		{"../assets/pic.png", RelativePath},
		{"/src/assets/2.jpeg", RelativePath},
		{"pic.png", RelativePath},
		{"", RelativePath},
		{"http://localhost:5000/uploads/pic.png", LoopbackHost},
		{"http://127.0.0.1/uploads/pic.png", LoopbackHost},
		{"https://LOCALHOST/x.png", LoopbackHost},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.raw), "input %q", tc.raw)
	}
}

func TestVerdictString(t *testing.T) {
	assert.Equal(t, "valid", Valid.String())
	assert.Equal(t, "relative-path", RelativePath.String())
	assert.Equal(t, "loopback-host", LoopbackHost.String())
}
