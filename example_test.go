// SPDX-License-Identifier: EPL-2.0

package tonefeed_test

import (
	"fmt"
	"os"

	"github.com/ik5/tonefeed"
	"github.com/ik5/tonefeed/config"
	"github.com/ik5/tonefeed/display"
	"github.com/ik5/tonefeed/internal/audiotest"
	"github.com/ik5/tonefeed/payload"
)

func ExampleDecodeSource() {
	cfg, err := config.Audible(44100)
	if err != nil {
		fmt.Println(err)
		return
	}

	msg, _ := payload.NewMessage("f6abc", "hello")
	dec := audiotest.NewDecoder(cfg.AnalysisWindow())
	dec.Payloads = map[int][]byte{2: msg}

	src := audiotest.NewSilence(22050, 2, 22050)
	stats, err := tonefeed.DecodeSource(src, cfg, dec, display.NewWriter(os.Stdout), tonefeed.Options{})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(stats.Samples, stats.Messages)
	// Output:
	// f6abc: hello
	// 44100 1
}
