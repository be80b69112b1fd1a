package vdf_test

import (
	"fmt"

	"github.com/joshuapare/vdfkit/pkg/types"
	"github.com/joshuapare/vdfkit/pkg/vdf"
)

func ExampleEncodeShortcuts() {
	root := types.NewMap().Set("0", types.NewMap().
		Set("appid", types.UInt32(123)).
		Set("AppName", types.Text("Foo")).
		Set("tags", types.NewMap()))

	data, err := vdf.EncodeShortcuts(root, types.EncodeOptions{})
	if err != nil {
		panic(err)
	}
	back, err := vdf.DecodeShortcuts(data, types.EncodingUTF8)
	if err != nil {
		panic(err)
	}
	for _, s := range vdf.ShortcutSummaries(back) {
		fmt.Println(s.Key, s.AppID, s.Name)
	}
	fmt.Println(len(data), types.Equal(root, back))
	// Output:
	// 0 123 Foo
	// 48 true
}

func ExampleMarshal() {
	root := types.NewMap().
		Set("appid", types.UInt32(440)).
		Set("common", types.NewMap().Set("name", types.Text("Team Fortress 2")))

	out, err := vdf.Marshal(root, vdf.FormatYAML)
	if err != nil {
		panic(err)
	}
	fmt.Print(string(out))
	// Output:
	// appid: 440
	// common:
	//   name: Team Fortress 2
}
