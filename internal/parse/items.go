package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// itemRe matches "ID" or "COUNTxID", e.g. "3" or "2x3".
var itemRe = regexp.MustCompile(`(?i)^(?:(\d+)\s*[x*]\s*)?(\d+)$`)

// maxRepeat bounds the COUNT in "COUNTxID" so a typo cannot submit thousands
// of orders.
const maxRepeat = 50

// ParseItems expands CLI item arguments into menu item ids, one per ordered
// unit. Each argument may hold a comma separated list of "ID" or "COUNTxID"
// terms, so `ParseItems([]string{"1,2x3", "4"})` yields [1 3 3 4].
func ParseItems(args []string) ([]int64, error) {
	var ids []int64
	for _, arg := range args {
		for _, term := range strings.Split(arg, ",") {
			term = strings.TrimSpace(term)
			if term == "" {
				continue
			}

			m := itemRe.FindStringSubmatch(term)
			if m == nil {
				return nil, fmt.Errorf("invalid item %q: want ID or COUNTxID", term)
			}

			id, err := strconv.ParseInt(m[2], 10, 64)
			if err != nil || id <= 0 {
				return nil, fmt.Errorf("invalid item id in %q", term)
			}

			count := 1
			if m[1] != "" {
				count, err = strconv.Atoi(m[1])
				if err != nil || count <= 0 || count > maxRepeat {
					return nil, fmt.Errorf("invalid count in %q: must be between 1 and %d", term, maxRepeat)
				}
			}

			for i := 0; i < count; i++ {
				ids = append(ids, id)
			}
		}
	}

	if len(ids) == 0 {
		return nil, fmt.Errorf("no items given")
	}
	return ids, nil
}
