package payment

import (
	"fmt"
	"hash/fnv"
)

// BuildPayload renders a QRIS-style EMV string for display. It is
// deterministic in amount and nonce so the same session always shows the
// same code. Nothing in the core parses it back; it is a display artifact
// and not an authoritative payment instruction.
func BuildPayload(amount float64, nonce string) string {
	ref := merchantRef(nonce)
	return fmt.Sprintf(
		"00020101021126620014ID.CO.QRIS.WWW0215ID20%s0303UMI51440014ID.CO.QRIS.WWW0215ID20%s5303360540%.0f5802ID5913QuickPOS Store6015Jakarta Selatan61051234062070703A016304",
		ref, ref, amount,
	)
}

// merchantRef derives a stable 8-digit reference from the session nonce.
func merchantRef(nonce string) string {
	h := fnv.New32a()
	h.Write([]byte(nonce))
	return fmt.Sprintf("%08d", h.Sum32()%100000000)
}
