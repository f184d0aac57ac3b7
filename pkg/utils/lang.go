package utils

import (
	"github.com/abadojack/whatlanggo"
)

var whatLangOpts = whatlanggo.Options{
	Whitelist: map[whatlanggo.Lang]bool{
		whatlanggo.Eng: true,
		whatlanggo.Cmn: true,
		whatlanggo.Jpn: true,
		whatlanggo.Fra: true,
		whatlanggo.Deu: true,
		whatlanggo.Spa: true,
	},
}

// WhatLang 检测文本语言，内容过短时结果不可靠，调用方自行取舍
func WhatLang(text string) string {
	info := whatlanggo.DetectWithOptions(text, whatLangOpts)
	return info.Lang.String()
}
