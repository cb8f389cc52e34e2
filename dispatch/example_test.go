// SPDX-License-Identifier: EPL-2.0

package dispatch_test

import (
	"fmt"

	"github.com/ik5/tonefeed/dispatch"
	"github.com/ik5/tonefeed/internal/audiotest"
	"github.com/ik5/tonefeed/payload"
	"github.com/ik5/tonefeed/ring"
)

func Example() {
	feed, err := ring.New(8)
	if err != nil {
		panic(err)
	}

	msg, err := payload.NewMessage("abc", "hi")
	if err != nil {
		panic(err)
	}

	dec := audiotest.NewDecoder(4)
	dec.Payloads = map[int][]byte{2: msg}

	sink := payload.SinkFunc(func(m payload.Message) error {
		fmt.Printf("%s: %s\n", m.Identity, m.Body)
		return nil
	})

	d := dispatch.New(feed, dec, sink)

	feed.Write(make([]float32, 6))
	d.Pump()
	feed.Write(make([]float32, 6))
	st := d.Pump()

	fmt.Println(dec.Lengths())
	fmt.Println(st.Windows, st.Messages)
	// Output:
	// abc: hi
	// [4 2 2 4]
	// 2 1
}
