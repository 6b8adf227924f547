package dto

import "time"

type AddInput struct {
	Name    string
	Roaster string
	Roast   string
	Origin  string
	Tags    []string
}

type BeanOutput struct {
	ID       string
	Name     string
	Roaster  string
	Roast    string
	Slug     string
	NotePath string
}

type BeanDetailOutput struct {
	ID       string
	Name     string
	Roaster  string
	Roast    string
	Origin   string
	Slug     string
	Tags     []string
	NotePath string
	AddedAt  time.Time
}

type ReindexInput struct{}
