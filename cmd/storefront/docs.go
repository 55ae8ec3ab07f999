package main

// @title Storefront State API
// @version 1.0
// @description Local state API over the cart, wishlist, session, address book and order history

// @host localhost:8080
// @BasePath /

// @tag.name Cart
// @tag.description Cart lines and priced summary

// @tag.name Wishlist
// @tag.description Saved products

// @tag.name Session
// @tag.description Signed-in user and token

// @tag.name Addresses
// @tag.description Shipping address book

// @tag.name Orders
// @tag.description Checkout and order history

// @tag.name Health
// @tag.description Health check endpoints
