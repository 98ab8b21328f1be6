// Package wire 实现协议的基础类型编解码：大端定长数值、单字节布尔、
// int16 长度前缀的 UTF-8 字符串以及原始字节块。
package wire

// MaxStringLength 字符串长度前缀为 int16，最大 32767 字节
const MaxStringLength = 1<<15 - 1

func boolToByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}
