// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package coords

// Pattern fragments shared by the catalog. Latitude degrees in the bare
// decimal grammars are limited to two digits so that a three or four digit
// run next to a hemisphere letter is read as a DM block.
const (
	frac     = `(?:\.\d+)?`
	between  = `\s*,?\s*`
	latDec2  = `(\d{1,2}` + frac + `)`
	latDec3  = `(\d{1,3}` + frac + `)`
	lonDec   = `(\d{1,3}` + frac + `)`
	signDec  = `(-?\d{1,3}` + frac + `)`
	deg      = `(\d{1,3})`
	signDeg  = `(-?\d{1,3})`
	mins     = `(\d{1,2})`
	minsFrac = `(\d{1,2}` + frac + `)`
	secsFrac = `(\d{1,2}` + frac + `)`
	latHemi  = `([NS])`
	lonHemi  = `([EW])`
	dmLatBlk = `(\d{3,4}` + frac + `)`
	dmLonBlk = `(\d{3,5}` + frac + `)`
	dmsLatBk = `(\d{6}` + frac + `)`
	dmsLonBk = `(\d{7}` + frac + `)`
	dmSym    = `\s*°\s*`
	minSym   = `\s*'\s*`
	secSym   = `\s*"\s*`
)

func anchor(parts ...string) string {
	s := "^"
	for _, p := range parts {
		s += p
	}

	return s + "$"
}

// DefaultFormats returns a fresh copy of the built-in catalog, most specific
// notation first.
func DefaultFormats() []Format {
	return []Format{
		// dms
		MustGrammar("dms-block-prefixed-hemisphere", NotationDMS,
			anchor(latHemi, `\s*`, dmsLatBk, between, lonHemi, `\s*`, dmsLonBk),
			Roles{Hemisphere: 1, Block: 2}, Roles{Hemisphere: 3, Block: 4},
			"N400723 W0740723", "S 343612.5, W 0582254.1"),
		MustGrammar("dms-block-suffixed-hemisphere", NotationDMS,
			anchor(dmsLatBk, `\s*`, latHemi, between, dmsLonBk, `\s*`, lonHemi),
			Roles{Block: 1, Hemisphere: 2}, Roles{Block: 3, Hemisphere: 4},
			"400723N 0740723W", "343612.5 S, 0582254.1 W"),
		MustGrammar("dms-symbol-prefixed-hemisphere", NotationDMS,
			anchor(latHemi, `\s*`, deg, dmSym, mins, minSym, secsFrac, secSym, between,
				lonHemi, `\s*`, deg, dmSym, mins, minSym, secsFrac, `\s*"`),
			Roles{Hemisphere: 1, Degrees: 2, Minutes: 3, Seconds: 4},
			Roles{Hemisphere: 5, Degrees: 6, Minutes: 7, Seconds: 8},
			`N40°7'23" W74°7'23"`, `S 34° 36' 12.5", W 58° 22' 54.1"`),
		MustGrammar("dms-symbol-suffixed-hemisphere", NotationDMS,
			anchor(deg, dmSym, mins, minSym, secsFrac, secSym, latHemi, between,
				deg, dmSym, mins, minSym, secsFrac, secSym, lonHemi),
			Roles{Degrees: 1, Minutes: 2, Seconds: 3, Hemisphere: 4},
			Roles{Degrees: 5, Minutes: 6, Seconds: 7, Hemisphere: 8},
			`40°7'23"N 74°7'23"W`, `34° 36' 12.5" S, 58° 22' 54.1" W`),
		MustGrammar("dms-symbol-signed", NotationDMS,
			anchor(signDeg, dmSym, mins, minSym, secsFrac, secSym, between,
				signDeg, dmSym, mins, minSym, secsFrac, `\s*"`),
			Roles{Degrees: 1, Minutes: 2, Seconds: 3},
			Roles{Degrees: 4, Minutes: 5, Seconds: 6},
			`40°7'23", -74°7'23"`, `-34°36'12.5" -58°22'54.1"`),
		MustGrammar("dms-colon-prefixed-hemisphere", NotationDMS,
			anchor(latHemi, `\s*`, deg, `:`, mins, `:`, secsFrac, between,
				lonHemi, `\s*`, deg, `:`, mins, `:`, secsFrac),
			Roles{Hemisphere: 1, Degrees: 2, Minutes: 3, Seconds: 4},
			Roles{Hemisphere: 5, Degrees: 6, Minutes: 7, Seconds: 8},
			"N40:7:23 W74:7:23", "S 34:36:12.5, W 58:22:54.1"),
		MustGrammar("dms-colon-suffixed-hemisphere", NotationDMS,
			anchor(deg, `:`, mins, `:`, secsFrac, `\s*`, latHemi, between,
				deg, `:`, mins, `:`, secsFrac, `\s*`, lonHemi),
			Roles{Degrees: 1, Minutes: 2, Seconds: 3, Hemisphere: 4},
			Roles{Degrees: 5, Minutes: 6, Seconds: 7, Hemisphere: 8},
			"40:7:23N 74:7:23W", "34:36:12.5 S, 58:22:54.1 W"),
		MustGrammar("dms-colon-signed", NotationDMS,
			anchor(signDeg, `:`, mins, `:`, secsFrac, `\s*[,\s]\s*`,
				signDeg, `:`, mins, `:`, secsFrac),
			Roles{Degrees: 1, Minutes: 2, Seconds: 3},
			Roles{Degrees: 4, Minutes: 5, Seconds: 6},
			"40:7:23, -74:7:23", "-34:36:12.5 -58:22:54.1"),
		MustGrammar("dms-space-prefixed-hemisphere", NotationDMS,
			anchor(latHemi, `\s*`, deg, `\s+`, mins, `\s+`, secsFrac, between,
				lonHemi, `\s*`, deg, `\s+`, mins, `\s+`, secsFrac),
			Roles{Hemisphere: 1, Degrees: 2, Minutes: 3, Seconds: 4},
			Roles{Hemisphere: 5, Degrees: 6, Minutes: 7, Seconds: 8},
			"N 40 7 23 W 74 7 23", "S 34 36 12.5, W 58 22 54.1"),
		MustGrammar("dms-space-suffixed-hemisphere", NotationDMS,
			anchor(deg, `\s+`, mins, `\s+`, secsFrac, `\s*`, latHemi, between,
				deg, `\s+`, mins, `\s+`, secsFrac, `\s*`, lonHemi),
			Roles{Degrees: 1, Minutes: 2, Seconds: 3, Hemisphere: 4},
			Roles{Degrees: 5, Minutes: 6, Seconds: 7, Hemisphere: 8},
			"40 7 23 N 74 7 23 W", "34 36 12.5 S, 58 22 54.1 W"),

		// dm
		MustGrammar("dm-block-prefixed-hemisphere", NotationDM,
			anchor(latHemi, `\s*`, dmLatBlk, between, lonHemi, `\s*`, dmLonBlk),
			Roles{Hemisphere: 1, Block: 2}, Roles{Hemisphere: 3, Block: 4},
			"N4007.38 W07407.38", "S 3436.208, W 5822.9"),
		MustGrammar("dm-block-suffixed-hemisphere", NotationDM,
			anchor(dmLatBlk, `\s*`, latHemi, between, dmLonBlk, `\s*`, lonHemi),
			Roles{Block: 1, Hemisphere: 2}, Roles{Block: 3, Hemisphere: 4},
			"4007.38N 7407.38W", "3436.208 S, 05822.9 W"),
		MustGrammar("dm-symbol-prefixed-hemisphere", NotationDM,
			anchor(latHemi, `\s*`, deg, dmSym, minsFrac, minSym, between,
				lonHemi, `\s*`, deg, dmSym, minsFrac, `\s*'`),
			Roles{Hemisphere: 1, Degrees: 2, Minutes: 3},
			Roles{Hemisphere: 4, Degrees: 5, Minutes: 6},
			"N40°07.38' W74°07.38'", "S 34° 36.208', W 58° 22.9'"),
		MustGrammar("dm-symbol-suffixed-hemisphere", NotationDM,
			anchor(deg, dmSym, minsFrac, minSym, latHemi, between,
				deg, dmSym, minsFrac, minSym, lonHemi),
			Roles{Degrees: 1, Minutes: 2, Hemisphere: 3},
			Roles{Degrees: 4, Minutes: 5, Hemisphere: 6},
			"40°07'N 74°07'W", "34° 36.208' S, 58° 22.9' W"),
		MustGrammar("dm-colon-prefixed-hemisphere", NotationDM,
			anchor(latHemi, `\s*`, deg, `:`, minsFrac, between,
				lonHemi, `\s*`, deg, `:`, minsFrac),
			Roles{Hemisphere: 1, Degrees: 2, Minutes: 3},
			Roles{Hemisphere: 4, Degrees: 5, Minutes: 6},
			"N40:07.38 W74:07.38", "S 34:36.208, W 58:22.9"),
		MustGrammar("dm-colon-suffixed-hemisphere", NotationDM,
			anchor(deg, `:`, minsFrac, `\s*`, latHemi, between,
				deg, `:`, minsFrac, `\s*`, lonHemi),
			Roles{Degrees: 1, Minutes: 2, Hemisphere: 3},
			Roles{Degrees: 4, Minutes: 5, Hemisphere: 6},
			"40:07.38N 74:07.38W", "34:36.208 S, 58:22.9 W"),

		// decimal
		MustGrammar("decimal-degree-prefixed-hemisphere", NotationDecimal,
			anchor(latHemi, `\s*`, latDec3, `\s*°`, between, lonHemi, `\s*`, lonDec, `\s*°`),
			Roles{Hemisphere: 1, Degrees: 2}, Roles{Hemisphere: 3, Degrees: 4},
			"N 1.234° E 5.678°", "S34.6034°, W58.3816°"),
		MustGrammar("decimal-degree-suffixed-hemisphere", NotationDecimal,
			anchor(latDec3, `\s*°\s*`, latHemi, between, lonDec, `\s*°\s*`, lonHemi),
			Roles{Degrees: 1, Hemisphere: 2}, Roles{Degrees: 3, Hemisphere: 4},
			"1.234° N 5.678° E", "34.6034°S, 58.3816°W"),
		MustGrammar("decimal-degree-signed", NotationDecimal,
			anchor(signDec, `\s*°`, between, signDec, `\s*°`),
			Roles{Degrees: 1}, Roles{Degrees: 2},
			"1.234°, -5.678°", "-34.6034° -58.3816°"),
		MustGrammar("decimal-prefixed-hemisphere", NotationDecimal,
			anchor(latHemi, `\s*`, latDec2, between, lonHemi, `\s*`, lonDec),
			Roles{Hemisphere: 1, Degrees: 2}, Roles{Hemisphere: 3, Degrees: 4},
			"N 1.234, E 5.678", "S34.6034 W58.3816"),
		MustGrammar("decimal-suffixed-hemisphere", NotationDecimal,
			anchor(latDec2, `\s*`, latHemi, between, lonDec, `\s*`, lonHemi),
			Roles{Degrees: 1, Hemisphere: 2}, Roles{Degrees: 3, Hemisphere: 4},
			"1.234N 5.678E", "34.6034 S, 58.3816 W"),
		MustGrammar("decimal-signed", NotationDecimal,
			anchor(signDec, `\s*[,\s]\s*`, signDec),
			Roles{Degrees: 1}, Roles{Degrees: 2},
			"1.234, 5.678", "-34.6034 -58.3816"),
	}
}

// FormatNames lists the names of DefaultFormats in dispatch order.
func FormatNames() []string {
	formats := DefaultFormats()

	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.Name()
	}

	return names
}
