package bidi

// Reduced classes fed to the levels state tables.
const (
	resL  = 0
	resR  = 1
	resEN = 2
	resAN = 3
	resON = 4
	resS  = 5
	resB  = 6
)

// groupProp regroups Class values into the columns of impTabProps.
var groupProp = [...]uint8{
	//	L  R  EN ES ET AN CS B  S  WS ON LRE LRO AL RLE RLO PDF NSM BN FSI LRI RLI PDI ENL ENR
	0, 1, 2, 7, 8, 3, 9, 6, 5, 4, 4, 10, 10, 12, 10, 10, 10, 11, 10, 4, 4, 4, 4, 13, 14,
}

const (
	propsColumns = 16
	propsRes     = propsColumns - 1
)

func propsState(cell uint8) uint8  { return cell & 0x1f }
func propsAction(cell uint8) uint8 { return cell >> 5 }

// impTabProps is the properties state machine. Cells hold the next state in
// bits 0..4 and an action in bits 5..7:
//
//	1: process current seq1, init new seq1
//	2: init new seq2
//	3: process seq1, process seq2, init new seq1
//	4: process seq1, set seq1=seq2, init new seq2
//
// The ON column regroups ON, WS, FSI, LRI, RLI and PDI; the BN column
// regroups BN and the embedding controls. The last column is the reduced
// class assigned to a finished sequence.
var impTabProps = [...][propsColumns]uint8{
	//                      L       R       EN      AN      ON      S       B       ES      ET      CS      BN      NSM     AL      ENL     ENR     Res
	/*  0 Init        */ {1, 2, 4, 5, 7, 15, 17, 7, 9, 7, 0, 7, 3, 18, 21, resON},
	/*  1 L           */ {1, 32 + 2, 32 + 4, 32 + 5, 32 + 7, 32 + 15, 32 + 17, 32 + 7, 32 + 9, 32 + 7, 1, 1, 32 + 3, 32 + 18, 32 + 21, resL},
	/*  2 R           */ {32 + 1, 2, 32 + 4, 32 + 5, 32 + 7, 32 + 15, 32 + 17, 32 + 7, 32 + 9, 32 + 7, 2, 2, 32 + 3, 32 + 18, 32 + 21, resR},
	/*  3 AL          */ {32 + 1, 32 + 2, 32 + 6, 32 + 6, 32 + 8, 32 + 16, 32 + 17, 32 + 8, 32 + 8, 32 + 8, 3, 3, 3, 32 + 18, 32 + 21, resR},
	/*  4 EN          */ {32 + 1, 32 + 2, 4, 32 + 5, 32 + 7, 32 + 15, 32 + 17, 64 + 10, 11, 64 + 10, 4, 4, 32 + 3, 18, 21, resEN},
	/*  5 AN          */ {32 + 1, 32 + 2, 32 + 4, 5, 32 + 7, 32 + 15, 32 + 17, 32 + 7, 32 + 9, 64 + 12, 5, 5, 32 + 3, 32 + 18, 32 + 21, resAN},
	/*  6 AL:EN/AN    */ {32 + 1, 32 + 2, 6, 6, 32 + 8, 32 + 16, 32 + 17, 32 + 8, 32 + 8, 64 + 13, 6, 6, 32 + 3, 18, 21, resAN},
	/*  7 ON          */ {32 + 1, 32 + 2, 32 + 4, 32 + 5, 7, 32 + 15, 32 + 17, 7, 64 + 14, 7, 7, 7, 32 + 3, 32 + 18, 32 + 21, resON},
	/*  8 AL:ON       */ {32 + 1, 32 + 2, 32 + 6, 32 + 6, 8, 32 + 16, 32 + 17, 8, 8, 8, 8, 8, 32 + 3, 32 + 18, 32 + 21, resON},
	/*  9 ET          */ {32 + 1, 32 + 2, 4, 32 + 5, 7, 32 + 15, 32 + 17, 7, 9, 7, 9, 9, 32 + 3, 18, 21, resON},
	/* 10 EN+ES/CS    */ {96 + 1, 96 + 2, 4, 96 + 5, 128 + 7, 96 + 15, 96 + 17, 128 + 7, 128 + 14, 128 + 7, 10, 128 + 7, 96 + 3, 18, 21, resEN},
	/* 11 EN+ET       */ {32 + 1, 32 + 2, 4, 32 + 5, 32 + 7, 32 + 15, 32 + 17, 32 + 7, 11, 32 + 7, 11, 11, 32 + 3, 18, 21, resEN},
	/* 12 AN+CS       */ {96 + 1, 96 + 2, 96 + 4, 5, 128 + 7, 96 + 15, 96 + 17, 128 + 7, 128 + 14, 128 + 7, 12, 128 + 7, 96 + 3, 96 + 18, 96 + 21, resAN},
	/* 13 AL:EN/AN+CS */ {96 + 1, 96 + 2, 6, 6, 128 + 8, 96 + 16, 96 + 17, 128 + 8, 128 + 8, 128 + 8, 13, 128 + 8, 96 + 3, 18, 21, resAN},
	/* 14 ON+ET       */ {32 + 1, 32 + 2, 128 + 4, 32 + 5, 7, 32 + 15, 32 + 17, 7, 14, 7, 14, 14, 32 + 3, 128 + 18, 128 + 21, resON},
	/* 15 S           */ {32 + 1, 32 + 2, 32 + 4, 32 + 5, 32 + 7, 15, 32 + 17, 32 + 7, 32 + 9, 32 + 7, 15, 32 + 7, 32 + 3, 32 + 18, 32 + 21, resS},
	/* 16 AL:S        */ {32 + 1, 32 + 2, 32 + 6, 32 + 6, 32 + 8, 16, 32 + 17, 32 + 8, 32 + 8, 32 + 8, 16, 32 + 8, 32 + 3, 32 + 18, 32 + 21, resS},
	/* 17 B           */ {32 + 1, 32 + 2, 32 + 4, 32 + 5, 32 + 7, 32 + 15, 17, 32 + 7, 32 + 9, 32 + 7, 17, 32 + 7, 32 + 3, 32 + 18, 32 + 21, resB},
	/* 18 ENL         */ {32 + 1, 32 + 2, 18, 32 + 5, 32 + 7, 32 + 15, 32 + 17, 64 + 19, 20, 64 + 19, 18, 18, 32 + 3, 18, 21, resL},
	/* 19 ENL+ES/CS   */ {96 + 1, 96 + 2, 18, 96 + 5, 128 + 7, 96 + 15, 96 + 17, 128 + 7, 128 + 14, 128 + 7, 19, 128 + 7, 96 + 3, 18, 21, resL},
	/* 20 ENL+ET      */ {32 + 1, 32 + 2, 18, 32 + 5, 32 + 7, 32 + 15, 32 + 17, 32 + 7, 20, 32 + 7, 20, 20, 32 + 3, 18, 21, resL},
	/* 21 ENR         */ {32 + 1, 32 + 2, 21, 32 + 5, 32 + 7, 32 + 15, 32 + 17, 64 + 22, 23, 64 + 22, 21, 21, 32 + 3, 18, 21, resAN},
	/* 22 ENR+ES/CS   */ {96 + 1, 96 + 2, 21, 96 + 5, 128 + 7, 96 + 15, 96 + 17, 128 + 7, 128 + 14, 128 + 7, 22, 128 + 7, 96 + 3, 18, 21, resAN},
	/* 23 ENR+ET      */ {32 + 1, 32 + 2, 21, 32 + 5, 32 + 7, 32 + 15, 32 + 17, 32 + 7, 23, 32 + 7, 23, 23, 32 + 3, 18, 21, resAN},
}

const (
	levelsColumns = resB + 2
	levelsRes     = levelsColumns - 1
)

func levelsState(cell uint8) uint8  { return cell & 0x0f }
func levelsAction(cell uint8) uint8 { return cell >> 4 }

// levelsTable is one levels state machine. Cells hold the next state in bits
// 0..3 and an action in bits 4..7:
//
//	1: init conditional sequence
//	2: prepend conditional sequence to current sequence
//	3: set the pending ON sequence to run level + 1 (EN/AN after R+ON)
//	4: set the pending ON sequence to run level + 2 (EN/AN before R)
//
// The last column is the level increment for the sequence.
type levelsTable [][levelsColumns]uint8

// impTabPair holds the tables for even and odd run levels.
type impTabPair [2]levelsTable

var impTabLDefault = levelsTable{
	//                      L     R     EN    AN    ON    S     B     Res
	/* 0 : init       */ {0, 1, 0, 2, 0, 0, 0, 0},
	/* 1 : R          */ {0, 1, 3, 3, 0x14, 0x14, 0, 1},
	/* 2 : AN         */ {0, 1, 0, 2, 0x15, 0x15, 0, 2},
	/* 3 : R+EN/AN    */ {0, 1, 3, 3, 0x14, 0x14, 0, 2},
	/* 4 : R+ON       */ {0, 0x21, 0x33, 0x33, 4, 4, 0, 0},
	/* 5 : AN+ON      */ {0, 0x21, 0, 0x32, 5, 5, 0, 0},
}

var impTabRDefault = levelsTable{
	//                      L     R     EN    AN    ON    S     B     Res
	/* 0 : init       */ {1, 0, 2, 2, 0, 0, 0, 0},
	/* 1 : L          */ {1, 0, 1, 3, 0x14, 0x14, 0, 1},
	/* 2 : EN/AN      */ {1, 0, 2, 2, 0, 0, 0, 1},
	/* 3 : L+AN       */ {1, 0, 1, 3, 5, 5, 0, 1},
	/* 4 : L+ON       */ {0x21, 0, 0x21, 3, 4, 4, 0, 0},
	/* 5 : L+AN+ON    */ {1, 0, 1, 3, 5, 5, 0, 0},
}

var impTabLNumbersSpecial = levelsTable{
	//                      L     R     EN    AN    ON    S     B     Res
	/* 0 : init       */ {0, 2, 0x11, 0x11, 0, 0, 0, 0},
	/* 1 : L+EN/AN    */ {0, 0x42, 1, 1, 0, 0, 0, 0},
	/* 2 : R          */ {0, 2, 4, 4, 0x13, 0x13, 0, 1},
	/* 3 : R+ON       */ {0, 0x22, 0x34, 0x34, 3, 3, 0, 0},
	/* 4 : R+EN/AN    */ {0, 2, 4, 4, 0x13, 0x13, 0, 2},
}

var impTabLGroupNumbersWithR = levelsTable{
	//                      L     R     EN    AN    ON    S     B     Res
	/* 0 init         */ {0, 3, 0x11, 0x11, 0, 0, 0, 0},
	/* 1 EN/AN        */ {0x20, 3, 1, 1, 2, 0x20, 0x20, 2},
	/* 2 EN/AN+ON     */ {0x20, 3, 1, 1, 2, 0x20, 0x20, 1},
	/* 3 R            */ {0, 3, 5, 5, 0x14, 0, 0, 1},
	/* 4 R+ON         */ {0x20, 3, 5, 5, 4, 0x20, 0x20, 1},
	/* 5 R+EN/AN      */ {0, 3, 5, 5, 0x14, 0, 0, 2},
}

var impTabRGroupNumbersWithR = levelsTable{
	//                      L     R     EN    AN    ON    S     B     Res
	/* 0 init         */ {2, 0, 1, 1, 0, 0, 0, 0},
	/* 1 EN/AN        */ {2, 0, 1, 1, 0, 0, 0, 1},
	/* 2 L            */ {2, 0, 0x14, 0x14, 0x13, 0, 0, 1},
	/* 3 L+ON         */ {0x22, 0, 4, 4, 3, 0, 0, 0},
	/* 4 L+EN/AN      */ {0x22, 0, 4, 4, 3, 0, 0, 1},
}

var (
	impTabDefault           = impTabPair{impTabLDefault, impTabRDefault}
	impTabNumbersSpecial    = impTabPair{impTabLNumbersSpecial, impTabRDefault}
	impTabGroupNumbersWithR = impTabPair{impTabLGroupNumbersWithR, impTabRGroupNumbersWithR}
)

// pairedBrackets maps each opening paired bracket to its closing bracket
// (Bidi_Paired_Bracket of the "o" entries in BidiBrackets.txt).
var pairedBrackets = map[rune]rune{
	0x0028: 0x0029,
	0x005b: 0x005d,
	0x007b: 0x007d,
	0x0f3a: 0x0f3b,
	0x0f3c: 0x0f3d,
	0x169b: 0x169c,
	0x2045: 0x2046,
	0x207d: 0x207e,
	0x208d: 0x208e,
	0x2308: 0x2309,
	0x230a: 0x230b,
	0x2329: 0x232a,
	0x2768: 0x2769,
	0x276a: 0x276b,
	0x276c: 0x276d,
	0x276e: 0x276f,
	0x2770: 0x2771,
	0x2772: 0x2773,
	0x2774: 0x2775,
	0x27c5: 0x27c6,
	0x27e6: 0x27e7,
	0x27e8: 0x27e9,
	0x27ea: 0x27eb,
	0x27ec: 0x27ed,
	0x27ee: 0x27ef,
	0x2983: 0x2984,
	0x2985: 0x2986,
	0x2987: 0x2988,
	0x2989: 0x298a,
	0x298b: 0x298c,
	0x298d: 0x2990,
	0x298f: 0x298e,
	0x2991: 0x2992,
	0x2993: 0x2994,
	0x2995: 0x2996,
	0x2997: 0x2998,
	0x29d8: 0x29d9,
	0x29da: 0x29db,
	0x29fc: 0x29fd,
	0x2e22: 0x2e23,
	0x2e24: 0x2e25,
	0x2e26: 0x2e27,
	0x2e28: 0x2e29,
	0x2e55: 0x2e56,
	0x2e57: 0x2e58,
	0x2e59: 0x2e5a,
	0x2e5b: 0x2e5c,
	0x3008: 0x3009,
	0x300a: 0x300b,
	0x300c: 0x300d,
	0x300e: 0x300f,
	0x3010: 0x3011,
	0x3014: 0x3015,
	0x3016: 0x3017,
	0x3018: 0x3019,
	0x301a: 0x301b,
	0xfe59: 0xfe5a,
	0xfe5b: 0xfe5c,
	0xfe5d: 0xfe5e,
	0xff08: 0xff09,
	0xff3b: 0xff3d,
	0xff5b: 0xff5d,
	0xff5f: 0xff60,
	0xff62: 0xff63,
}
