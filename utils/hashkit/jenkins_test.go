package hashkit

import "testing"

func TestJenkinsStreamingMatchesOneShot(t *testing.T) {
	inputs := []string{"", "a", "queue", "the quick brown fox"}
	for _, in := range inputs {
		h := NewJenkins32()
		h.Write([]byte(in))
		if got, expect := h.Sum32(), Jenkins([]byte(in)); got != expect {
			t.Errorf("streaming %q, expect: [%v], got: [%v]", in, expect, got)
		}
		if got, expect := JenkinsString(in), Jenkins([]byte(in)); got != expect {
			t.Errorf("string %q, expect: [%v], got: [%v]", in, expect, got)
		}
	}
}

func TestJenkinsSplitWrites(t *testing.T) {
	h := NewJenkins32()
	h.Write([]byte("que"))
	h.Write([]byte("ue"))
	if got, expect := h.Sum32(), JenkinsString("queue"); got != expect {
		t.Errorf("split writes, expect: [%v], got: [%v]", expect, got)
	}
	h.Reset()
	if got, expect := h.Sum32(), Jenkins(nil); got != expect {
		t.Errorf("reset, expect: [%v], got: [%v]", expect, got)
	}
	if len(h.Sum(nil)) != h.Size() {
		t.Errorf("sum length mismatch")
	}
}
