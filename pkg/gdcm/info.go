// SPDX-License-Identifier: Apache-2.0
package gdcm

import (
	"regexp"
	"strings"
)

// gdcminfo prints the two identifiers on their own prose lines; the
// rest of the dump is "key: value" pairs.
var (
	mediaStorageRe   = regexp.MustCompile(`MediaStorage is ([0-9.]+)`)
	transferSyntaxRe = regexp.MustCompile(`TransferSyntax is ([0-9.]+)`)
	keyValueRe       = regexp.MustCompile(`^(.*?):\s+(.*)$`)
)

// ParseInfo scrapes the raw text of a gdcminfo dump into a key-value
// map. Empty input means no data: nil, not an error.
func ParseInfo(raw string) map[string]string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	info := make(map[string]string)
	for _, line := range strings.Split(raw, "\n") {
		if m := mediaStorageRe.FindStringSubmatch(line); m != nil {
			info["MediaStorage"] = m[1]
			continue
		}
		if m := transferSyntaxRe.FindStringSubmatch(line); m != nil {
			info["TransferSyntax"] = m[1]
			continue
		}
		if m := keyValueRe.FindStringSubmatch(line); m != nil {
			key := strings.TrimSpace(m[1])
			val := strings.TrimSpace(m[2])
			if key != "" {
				info[key] = val
			}
		}
	}

	if len(info) == 0 {
		return nil
	}
	return info
}
