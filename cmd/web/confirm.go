package main

// confirmPage is the interstitial every deletion goes through.
type confirmPage struct {
	Heading string
	Message string
	Action  string
	Submit  string
	Cancel  string
	Danger  bool
}
