package main

import "github.com/Hirosolo/train-diary-cli/cmd/traindiary"

func main() {
	traindiary.Execute()
}
