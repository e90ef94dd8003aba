package httpcache

import "net/http"

type NopClient struct{}

func NewNopClient() *NopClient {
	return &NopClient{}
}

func (NopClient) WrapHandlerFunc(handlerFunc http.HandlerFunc) http.HandlerFunc {
	return handlerFunc
}
