// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pool

import (
	"encoding/json"
	"fmt"
)

// Status - lifecycle state of a pool
type Status uint8

// possible states
const (
	None        Status = iota // id not in use
	Initialised               // created, waiting for funds
	Funded                    // claims and distribution allowed
	Closed                    // no further changes
)

func (s Status) String() string {
	switch s {
	case None:
		return "none"
	case Initialised:
		return "initialised"
	case Funded:
		return "funded"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// MarshalJSON - status as its name
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON - status from its name
func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	err := json.Unmarshal(data, &name)
	if nil != err {
		return err
	}
	for _, v := range []Status{None, Initialised, Funded, Closed} {
		if v.String() == name {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("unknown pool status: %q", name)
}
