package catalog

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestTier_Text(t *testing.T) {
	t.Parallel()

	for _, tier := range []Tier{TierMula, TierAtthakatha, TierTika, TierOther} {
		text, err := tier.MarshalText()
		if err != nil {
			t.Fatalf("%v.MarshalText(): %v", tier, err)
		}
		var got Tier
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if got != tier {
			t.Errorf("UnmarshalText(%q) = %v, want %v", text, got, tier)
		}
	}

	if _, err := Tier(0).MarshalText(); !errors.Is(err, ErrInvalidEnum) {
		t.Errorf("zero tier MarshalText error = %v, want ErrInvalidEnum", err)
	}
	var tier Tier
	for _, bad := range []string{"", "mula", "Root"} {
		if err := tier.UnmarshalText([]byte(bad)); !errors.Is(err, ErrInvalidEnum) {
			t.Errorf("UnmarshalText(%q) error = %v, want ErrInvalidEnum", bad, err)
		}
	}
	if got := Tier(9).String(); got != "Tier(9)" {
		t.Errorf("String() = %q, want Tier(9)", got)
	}
}

func TestPitaka_Text(t *testing.T) {
	t.Parallel()

	names := map[Pitaka]string{
		PitakaVinaya:     "Vinaya",
		PitakaSutta:      "Sutta",
		PitakaAbhidhamma: "Abhidhamma",
		PitakaOther:      "Other",
	}
	for p, name := range names {
		if p.String() != name {
			t.Errorf("String() = %q, want %q", p.String(), name)
		}
		var got Pitaka
		if err := got.UnmarshalText([]byte(name)); err != nil || got != p {
			t.Errorf("UnmarshalText(%q) = %v, %v; want %v", name, got, err, p)
		}
	}
	if _, err := Pitaka(0).MarshalText(); !errors.Is(err, ErrInvalidEnum) {
		t.Errorf("zero pitaka MarshalText error = %v, want ErrInvalidEnum", err)
	}
}

func TestBookType_ZeroIsUnknown(t *testing.T) {
	t.Parallel()

	var bt BookType
	text, err := bt.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText(): %v", err)
	}
	if string(text) != "Unknown" {
		t.Errorf("zero BookType = %q, want Unknown", text)
	}
	if err := bt.UnmarshalText([]byte("Split")); err != nil || bt != BookTypeSplit {
		t.Errorf("UnmarshalText(Split) = %v, %v", bt, err)
	}
	if _, err := BookType(-1).MarshalText(); !errors.Is(err, ErrInvalidEnum) {
		t.Errorf("BookType(-1) MarshalText error = %v, want ErrInvalidEnum", err)
	}
}

func TestRefField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		field RefField
		name  string
		tier  Tier
	}{
		{RefMula, "MulaIndex", TierMula},
		{RefAtthakatha, "AtthakathaIndex", TierAtthakatha},
		{RefTika, "TikaIndex", TierTika},
	}
	b := Book{Mula: intp(1), Atthakatha: intp(2), Tika: intp(3)}
	for i, tt := range tests {
		if tt.field.String() != tt.name {
			t.Errorf("String() = %q, want %q", tt.field.String(), tt.name)
		}
		if tt.field.Tier() != tt.tier {
			t.Errorf("%s.Tier() = %v, want %v", tt.name, tt.field.Tier(), tt.tier)
		}
		if got := b.Ref(tt.field); got == nil || *got != i+1 {
			t.Errorf("Ref(%s) = %v, want %d", tt.name, got, i+1)
		}
	}
}

func TestBook_JSONRendersEnumsByName(t *testing.T) {
	t.Parallel()

	b := Book{
		Index:    3,
		FileName: "s0201m.mul.xml",
		Tier:     TierMula,
		Pitaka:   PitakaSutta,
		BookType: BookTypeWhole,
		Mula:     nil,
		Tika:     intp(113),
	}
	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"Index":3,"FileName":"s0201m.mul.xml","LongNavPath":"","ShortNavPath":"","Matn":"Mula","Pitaka":"Sutta","BookType":"Whole","MulaIndex":null,"AtthakathaIndex":null,"TikaIndex":113,"ChapterListTypes":null}`
	if string(data) != want {
		t.Errorf("Marshal =\n%s\nwant\n%s", data, want)
	}

	var back Book
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.Tier != TierMula || back.Pitaka != PitakaSutta || back.BookType != BookTypeWhole {
		t.Errorf("enums after round trip = %v/%v/%v", back.Tier, back.Pitaka, back.BookType)
	}
	if back.Mula != nil || back.Tika == nil || *back.Tika != 113 {
		t.Errorf("references after round trip: mula=%v tika=%v", back.Mula, back.Tika)
	}
}
