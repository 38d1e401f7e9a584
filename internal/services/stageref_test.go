package services

import "testing"

func TestParseStageRef(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		wantKind StageRefKind
		wantOrd  int
		wantID   string
	}{
		{name: "single_digit", raw: "1", wantKind: StageRefOrdinal, wantOrd: 1},
		{name: "multi_digit", raw: "42", wantKind: StageRefOrdinal, wantOrd: 42},
		{name: "leading_zero", raw: "007", wantKind: StageRefOrdinal, wantOrd: 7},
		{name: "uuid", raw: "2f0b54f3-9f0f-4e43-bd4c-7ce1e41f11e0", wantKind: StageRefStableID, wantID: "2f0b54f3-9f0f-4e43-bd4c-7ce1e41f11e0"},
		{name: "mixed", raw: "1a", wantKind: StageRefStableID, wantID: "1a"},
		{name: "empty", raw: "", wantKind: StageRefStableID, wantID: ""},
		{name: "negative_is_not_ordinal", raw: "-3", wantKind: StageRefStableID, wantID: "-3"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseStageRef(tc.raw)
			if got.Kind != tc.wantKind {
				t.Fatalf("kind: want=%s got=%s", tc.wantKind, got.Kind)
			}
			if got.Ordinal != tc.wantOrd {
				t.Fatalf("ordinal: want=%d got=%d", tc.wantOrd, got.Ordinal)
			}
			if got.StableID != tc.wantID {
				t.Fatalf("stable id: want=%q got=%q", tc.wantID, got.StableID)
			}
		})
	}
}
